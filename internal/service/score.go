package service

import (
	"math"
	"quiz_grading_backend/internal/model"
)

// ScoreSummary is the reproducible result of one graded submission.
type ScoreSummary struct {
	Score          int
	TotalQuestions int
	Percentage     float64
	Message        string
}

// Percentage 保留两位小数，恰为一半时取偶；题目数为 0 时返回 0
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.RoundToEven(float64(score)/float64(total)*100*100) / 100
}

// Aggregate 未作答的题目不计分但计入总题数
func Aggregate(a *model.Assessment, graded []GradedQuestion) ScoreSummary {
	score := 0
	for _, g := range graded {
		if g.IsCorrect() {
			score++
		}
	}
	total := len(a.Questions)

	return ScoreSummary{
		Score:          score,
		TotalQuestions: total,
		Percentage:     Percentage(score, total),
		Message:        completionMessage(a),
	}
}

func completionMessage(a *model.Assessment) string {
	label := a.Kind.Label()
	if a.HasDescriptive() {
		return label + " graded; descriptive answers were evaluated automatically"
	}
	return label + " graded successfully"
}
