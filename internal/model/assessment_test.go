package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessmentQuestion_SetOptionsTrimsToFour(t *testing.T) {
	q := AssessmentQuestion{}
	q.SetOptions([]string{"a", "b", "c", "d", "e", "f"})

	assert.Equal(t, []string{"a", "b", "c", "d"}, q.OptionList())
	assert.True(t, q.HasOptions())

	q.SetOptions(nil)
	assert.Nil(t, q.Options)
	assert.False(t, q.HasOptions())
}

func TestAssessmentQuestion_Kind(t *testing.T) {
	withOpts := AssessmentQuestion{}
	withOpts.SetOptions([]string{"3", "4"})

	tests := []struct {
		name string
		q    AssessmentQuestion
		want QuestionType
	}{
		{name: "explicit mcq", q: AssessmentQuestion{Type: QuestionMCQ}, want: QuestionMCQ},
		{name: "explicit descriptive", q: AssessmentQuestion{Type: QuestionDescriptive, Options: withOpts.Options}, want: QuestionDescriptive},
		{name: "inferred from options", q: withOpts, want: QuestionMCQ},
		{name: "inferred without options", q: AssessmentQuestion{Type: "essay"}, want: QuestionDescriptive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Kind())
		})
	}
}

func TestAssessment_HasDescriptive(t *testing.T) {
	a := Assessment{Questions: []AssessmentQuestion{{Type: QuestionMCQ}}}
	assert.False(t, a.HasDescriptive())

	a.Questions = append(a.Questions, AssessmentQuestion{Type: QuestionDescriptive})
	assert.True(t, a.HasDescriptive())
}
