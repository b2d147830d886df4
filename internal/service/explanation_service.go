package service

import (
	"context"
	"fmt"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

const explanationSystemPrompt = "You are a patient tutor. Explain answers clearly and briefly for a student."

type ExplainRequest struct {
	Question      string `json:"question" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	StudentAnswer string `json:"student_answer"`
}

type ExplainResult struct {
	Explanation string `json:"explanation"`
}

// ExplanationService 为学生生成答案解析
type ExplanationService struct {
	ai      ChatCompleter
	timeout time.Duration
}

func NewExplanationService(ai ChatCompleter, timeout time.Duration) *ExplanationService {
	return &ExplanationService{ai: ai, timeout: timeout}
}

func buildExplanationPrompt(req ExplainRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question:\n%s\n\nCorrect answer:\n%s\n\n", req.Question, req.CorrectAnswer)
	if strings.TrimSpace(req.StudentAnswer) != "" {
		fmt.Fprintf(&b, "Student's answer:\n%s\n\n", req.StudentAnswer)
		b.WriteString("Explain why the correct answer is right and, if the student's answer differs, what the student missed.")
	} else {
		b.WriteString("Explain why the correct answer is right.")
	}
	return b.String()
}

// Explain 与判分不同，调用失败直接返回 ErrOracleUnavailable
func (s *ExplanationService) Explain(ctx context.Context, req ExplainRequest) (*ExplainResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.ai.Complete(ctx, []AIChatMessage{
		{Role: "system", Content: explanationSystemPrompt},
		{Role: "user", Content: buildExplanationPrompt(req)},
	}, 0.3)
	if err != nil {
		logger.Log.Warn("Explanation request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrOracleUnavailable, err)
	}
	return &ExplainResult{Explanation: strings.TrimSpace(reply)}, nil
}
