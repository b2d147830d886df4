package service

import (
	"context"
	"math"
	"quiz_grading_backend/internal/util"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityGrader accepts a descriptive answer when its SequenceMatcher
// ratio against the reference reaches the threshold (0..100).
type SimilarityGrader struct {
	threshold int
}

func NewSimilarityGrader(threshold int) *SimilarityGrader {
	return &SimilarityGrader{threshold: threshold}
}

func (g *SimilarityGrader) Name() string {
	return util.StrategySimilarity
}

// SimilarityScore 字符级相似度，取值 0..100
func SimilarityScore(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return int(math.Round(m.Ratio() * 100))
}

func (g *SimilarityGrader) Evaluate(_ context.Context, _, studentText, referenceText string) Verdict {
	if SimilarityScore(studentText, referenceText) >= g.threshold {
		return VerdictCorrect
	}
	return VerdictIncorrect
}
