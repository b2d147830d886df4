package service

import (
	"context"
	"errors"
	"quiz_grading_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerFunc func(ctx context.Context, messages []AIChatMessage, temperature float64) (string, error)

func (f completerFunc) Complete(ctx context.Context, messages []AIChatMessage, temperature float64) (string, error) {
	return f(ctx, messages, temperature)
}

func TestExplain(t *testing.T) {
	var gotTemp float64
	var gotPrompt string
	svc := NewExplanationService(completerFunc(func(_ context.Context, m []AIChatMessage, temp float64) (string, error) {
		gotTemp = temp
		gotPrompt = m[1].Content
		return "  Paris is the capital.  ", nil
	}), time.Second)

	res, err := svc.Explain(context.Background(), ExplainRequest{Question: "Capital of France?", CorrectAnswer: "Paris", StudentAnswer: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", res.Explanation)
	assert.Equal(t, 0.3, gotTemp)
	assert.Contains(t, gotPrompt, "Student's answer:\nRome")
}

func TestExplainFailure(t *testing.T) {
	svc := NewExplanationService(completerFunc(func(context.Context, []AIChatMessage, float64) (string, error) {
		return "", errors.New("status 500")
	}), time.Second)

	_, err := svc.Explain(context.Background(), ExplainRequest{Question: "q", CorrectAnswer: "a"})
	assert.ErrorIs(t, err, util.ErrOracleUnavailable)
}
