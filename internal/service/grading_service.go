package service

import (
	"context"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/pkg/logger"
	"quiz_grading_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GradedQuestion is the per-question outcome handed to the aggregator.
type GradedQuestion struct {
	Question  *model.AssessmentQuestion
	Attempted bool
	Verdict   Verdict
	Answer    model.GradedAnswer
}

func (g GradedQuestion) IsCorrect() bool {
	return g.Attempted && g.Verdict.IsCorrect()
}

// GradingService routes each question to the grader for its type.
type GradingService struct {
	descriptive DescriptiveGrader
}

func NewGradingService(descriptive DescriptiveGrader) *GradingService {
	return &GradingService{descriptive: descriptive}
}

func (s *GradingService) StrategyName() string {
	return s.descriptive.Name()
}

// Grade grades one normalized answer and records is_correct on the result.
func (s *GradingService) Grade(ctx context.Context, q *model.AssessmentQuestion, n NormalizedAnswer) GradedQuestion {
	out := GradedQuestion{
		Question: q,
		Answer: model.GradedAnswer{
			Text:           n.Text,
			SelectedOption: n.SelectedOption,
		},
	}

	switch q.Kind() {
	case model.QuestionMCQ:
		out.Attempted = true
		out.Verdict = gradeObjective(q, n)
	default:
		studentText := strings.TrimSpace(n.TextValue())
		if studentText == "" {
			// 空文本视为未作答，不调用判分服务
			logger.Log.Debug("Descriptive answer is empty, skipping", zap.String("question", q.Text))
			return out
		}
		out.Attempted = true
		out.Verdict = s.descriptive.Evaluate(ctx, q.Text, studentText, strings.TrimSpace(q.Answer))
		monitoring.DescriptiveVerdicts.WithLabelValues(s.descriptive.Name(), out.Verdict.String()).Inc()
		if out.Verdict == VerdictUnknown {
			logger.Log.Warn("Descriptive answer scored as incorrect because the grader was unavailable",
				zap.String("strategy", s.descriptive.Name()),
				zap.String("question", q.Text),
			)
		}
	}

	correct := out.Verdict.IsCorrect()
	out.Answer.IsCorrect = &correct
	return out
}

// gradeObjective 选择题：比较选项文本，未给出选项时回退到文本答案
func gradeObjective(q *model.AssessmentQuestion, n NormalizedAnswer) Verdict {
	given := n.SelectedValue()
	if n.SelectedOption == nil {
		given = n.TextValue()
	}
	if normalizeText(given) == normalizeText(q.Answer) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

// GradeAll grades every question of the assessment, at most maxConcurrency at
// a time. Unanswered questions come back with Attempted=false. The returned
// slice keeps the assessment's question order.
func (s *GradingService) GradeAll(ctx context.Context, a *model.Assessment, answers map[string]model.Answer, maxConcurrency int) []GradedQuestion {
	results := make([]GradedQuestion, len(a.Questions))

	var g errgroup.Group
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i := range a.Questions {
		q := &a.Questions[i]
		submitted, found := answers[q.Text]
		n, ok := NormalizeAnswer(q, submitted)
		if !found || !ok {
			results[i] = GradedQuestion{Question: q}
			continue
		}

		g.Go(func() error {
			results[i] = s.Grade(ctx, q, n)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
