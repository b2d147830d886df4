package service

import (
	"context"
	"quiz_grading_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAnswer(t *testing.T) {
	mcq := mcqQuestion("Capital of France?", "Paris", "Paris", "Rome")
	desc := descriptiveQuestion("Explain gravity", "A force of attraction")

	n, ok := NormalizeAnswer(&mcq, model.RawAnswer("Paris"))
	require.True(t, ok)
	assert.Nil(t, n.Text)
	assert.Equal(t, "Paris", n.SelectedValue())

	n, ok = NormalizeAnswer(&desc, model.RawAnswer("It pulls things down"))
	require.True(t, ok)
	assert.Nil(t, n.SelectedOption)
	assert.Equal(t, "It pulls things down", n.TextValue())

	n, ok = NormalizeAnswer(&mcq, model.StructuredAnswer(strPtr("Paris"), nil))
	require.True(t, ok)
	assert.Equal(t, "Paris", n.TextValue())
	assert.Nil(t, n.SelectedOption)

	_, ok = NormalizeAnswer(&mcq, model.Answer{})
	assert.False(t, ok)
}

func TestGradeObjective(t *testing.T) {
	svc := NewGradingService(&stubGrader{verdict: VerdictIncorrect})
	q := mcqQuestion("Capital of France?", "paris", "Paris", "Rome")

	tests := []struct {
		name   string
		answer model.Answer
		want   bool
	}{
		{"raw with whitespace and case", model.RawAnswer(" Paris "), true},
		{"structured selected option", model.StructuredAnswer(nil, strPtr("PARIS")), true},
		{"structured text fallback", model.StructuredAnswer(strPtr("paris"), nil), true},
		{"selected option wins over text", model.StructuredAnswer(strPtr("paris"), strPtr("Rome")), false},
		{"wrong option", model.RawAnswer("Rome"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := NormalizeAnswer(&q, tt.answer)
			require.True(t, ok)
			g := svc.Grade(context.Background(), &q, n)
			assert.True(t, g.Attempted)
			assert.Equal(t, tt.want, g.IsCorrect())
			require.NotNil(t, g.Answer.IsCorrect)
			assert.Equal(t, tt.want, *g.Answer.IsCorrect)
		})
	}
}

func TestGradeDescriptive(t *testing.T) {
	q := descriptiveQuestion("Explain gravity", "A force of attraction")

	t.Run("empty text skips the grader", func(t *testing.T) {
		g := &stubGrader{verdict: VerdictCorrect}
		svc := NewGradingService(g)
		out := svc.Grade(context.Background(), &q, NormalizedAnswer{Text: strPtr("   ")})
		assert.False(t, out.Attempted)
		assert.False(t, out.IsCorrect())
		assert.Zero(t, g.calls.Load())
	})

	t.Run("descriptive uses the strategy even with a selected option", func(t *testing.T) {
		g := &stubGrader{verdict: VerdictCorrect}
		svc := NewGradingService(g)
		out := svc.Grade(context.Background(), &q, NormalizedAnswer{Text: strPtr("mass attracts mass"), SelectedOption: strPtr("A")})
		assert.True(t, out.IsCorrect())
		assert.EqualValues(t, 1, g.calls.Load())
	})

	t.Run("unknown counts as incorrect", func(t *testing.T) {
		svc := NewGradingService(&stubGrader{verdict: VerdictUnknown})
		out := svc.Grade(context.Background(), &q, NormalizedAnswer{Text: strPtr("mass attracts mass")})
		assert.True(t, out.Attempted)
		assert.Equal(t, VerdictUnknown, out.Verdict)
		assert.False(t, out.IsCorrect())
		require.NotNil(t, out.Answer.IsCorrect)
		assert.False(t, *out.Answer.IsCorrect)
	})
}

func TestGradeAllKeepsOrder(t *testing.T) {
	a := newQuiz(1, false,
		mcqQuestion("Q1", "a", "a", "b"),
		descriptiveQuestion("Q2", "ref"),
		mcqQuestion("Q3", "b", "a", "b"),
	)
	svc := NewGradingService(&stubGrader{verdict: VerdictCorrect})

	got := svc.GradeAll(context.Background(), a, map[string]model.Answer{
		"Q1": model.RawAnswer("a"),
		"Q2": model.RawAnswer("anything"),
	}, 2)

	require.Len(t, got, 3)
	assert.Equal(t, "Q1", got[0].Question.Text)
	assert.True(t, got[0].IsCorrect())
	assert.True(t, got[1].IsCorrect())
	assert.False(t, got[2].Attempted)
}
