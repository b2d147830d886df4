package service

import (
	"context"
	"regexp"
	"strings"
)

// Verdict of a descriptive grading strategy. Unknown means the strategy
// could not produce an answer (transport failure, timeout, bad payload).
type Verdict int

const (
	VerdictIncorrect Verdict = iota
	VerdictCorrect
	VerdictUnknown
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictUnknown:
		return "unknown"
	}
	return "incorrect"
}

// IsCorrect Unknown 计分时与 Incorrect 相同
func (v Verdict) IsCorrect() bool {
	return v == VerdictCorrect
}

// DescriptiveGrader is the single pluggable slot for free-text grading. The
// AI oracle and the lexical similarity grader are interchangeable here.
type DescriptiveGrader interface {
	Name() string
	Evaluate(ctx context.Context, questionText, studentText, referenceText string) Verdict
}

var verdictWord = regexp.MustCompile(`\b(correct|incorrect)\b`)

// ExtractVerdict parses a free-text oracle reply. Anything that is not
// clearly "correct" resolves to Incorrect.
func ExtractVerdict(reply string) Verdict {
	decision := strings.ToLower(strings.TrimSpace(reply))

	switch decision {
	case "correct":
		return VerdictCorrect
	case "incorrect":
		return VerdictIncorrect
	}

	if m := verdictWord.FindStringSubmatch(decision); m != nil && m[1] == "correct" {
		return VerdictCorrect
	}
	return VerdictIncorrect
}
