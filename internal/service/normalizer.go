package service

import (
	"quiz_grading_backend/internal/model"
	"strings"

	"golang.org/x/text/cases"
)

// NormalizedAnswer is the canonical form every grader works on.
type NormalizedAnswer struct {
	Text           *string
	SelectedOption *string
}

// TextValue 取文本答案，未提供时为空串
func (n NormalizedAnswer) TextValue() string {
	if n.Text == nil {
		return ""
	}
	return *n.Text
}

func (n NormalizedAnswer) SelectedValue() string {
	if n.SelectedOption == nil {
		return ""
	}
	return *n.SelectedOption
}

// NormalizeAnswer reconciles the raw-string and structured answer shapes.
// ok is false when nothing was submitted for the question: such a question is
// skipped by grading but still counts in the denominator.
func NormalizeAnswer(q *model.AssessmentQuestion, a model.Answer) (n NormalizedAnswer, ok bool) {
	switch a.Shape {
	case model.AnswerRaw:
		raw := a.Raw
		if q.HasOptions() {
			return NormalizedAnswer{SelectedOption: &raw}, true
		}
		return NormalizedAnswer{Text: &raw}, true
	case model.AnswerStructured:
		return NormalizedAnswer{Text: a.Text, SelectedOption: a.SelectedOption}, true
	}
	return NormalizedAnswer{}, false
}

// normalizeText 去除首尾空白并做大小写折叠
func normalizeText(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
