package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		reply string
		want  Verdict
	}{
		{"Correct", VerdictCorrect},
		{"  incorrect \n", VerdictIncorrect},
		{"CORRECT", VerdictCorrect},
		{"Correct.", VerdictCorrect},
		{"Final grade: Correct", VerdictCorrect},
		{"The answer is incorrect because it misses the key point.", VerdictIncorrect},
		{"I think this is somewhat acceptable", VerdictIncorrect},
		{"The student answered correctly", VerdictIncorrect},
		{"", VerdictIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVerdict(tt.reply))
		})
	}
}

func TestVerdictUnknownScoresAsIncorrect(t *testing.T) {
	assert.False(t, VerdictUnknown.IsCorrect())
	assert.False(t, VerdictIncorrect.IsCorrect())
	assert.True(t, VerdictCorrect.IsCorrect())
	assert.Equal(t, "unknown", VerdictUnknown.String())
}
