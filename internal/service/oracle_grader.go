package service

import (
	"context"
	"fmt"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

const oracleSystemPrompt = "You are a strict but fair examiner who only responds with Correct or Incorrect."

const oraclePromptTemplate = `You are an examiner evaluating a student's answer. Decide whether the student's answer is logically and factually correct, even if it is written differently from the reference.

Grading rules:
- Accept correct answers even if they are written in a different way or are shorter, as long as they are complete.
- Accept valid paraphrasing, synonyms, alternate explanations or simpler words that still reflect the right concept.
- Ignore spelling, grammar and small formatting differences.
- Do NOT compare word-for-word or expect exact phrasing.
- Reject only if the answer is wrong, incomplete or unrelated.

Respond with exactly ONE word: Correct or Incorrect.

---

Question:
%s

Reference Answer:
%s

Student's Answer:
%s

Final Grade (one word only):`

// OracleGrader grades descriptive answers through an external semantic
// classifier.
type OracleGrader struct {
	ai      ChatCompleter
	timeout time.Duration
}

func NewOracleGrader(ai ChatCompleter, timeout time.Duration) *OracleGrader {
	return &OracleGrader{ai: ai, timeout: timeout}
}

func (g *OracleGrader) Name() string {
	return util.StrategyOracle
}

func BuildOracleMessages(questionText, studentText, referenceText string) []AIChatMessage {
	return []AIChatMessage{
		{Role: "system", Content: oracleSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(oraclePromptTemplate, questionText, referenceText, studentText)},
	}
}

// Evaluate 调用失败或超时返回 VerdictUnknown，不向上传播错误
func (g *OracleGrader) Evaluate(ctx context.Context, questionText, studentText, referenceText string) Verdict {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := g.ai.Complete(ctx, BuildOracleMessages(questionText, studentText, referenceText), 0)
	if err != nil {
		logger.Log.Warn("Descriptive grading oracle unavailable",
			zap.String("question", questionText),
			zap.NamedError("cause", err),
			zap.Error(util.ErrOracleUnavailable),
		)
		return VerdictUnknown
	}

	verdict := ExtractVerdict(reply)
	logger.Log.Debug("Oracle verdict received",
		zap.String("question", questionText),
		zap.String("reply", reply),
		zap.Stringer("verdict", verdict),
	)
	return verdict
}
