package grader

import (
	"strings"

	"golang.org/x/text/cases"
)

// Verdict is the outcome of judging a single answer.
type Verdict struct {
	Correct bool `json:"correct"`
}

// Grader judges a user's answer against an expected answer.
// Implementations must be deterministic; tests swap in canned graders.
type Grader interface {
	Judge(userAnswer, expectedAnswer string) Verdict
}

// ExactGrader accepts an answer when it equals the expected answer once
// surrounding whitespace is trimmed and case is folded. Punctuation, accents
// and inner whitespace are compared as-is.
type ExactGrader struct{}

// Compile-time check: ExactGrader satisfies the Grader interface.
var _ Grader = ExactGrader{}

func (ExactGrader) Judge(userAnswer, expectedAnswer string) Verdict {
	return Verdict{Correct: Normalize(userAnswer) == Normalize(expectedAnswer)}
}

// Normalize trims and case-folds s.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// IsBlank reports whether s is empty after trimming. Blank answers are
// non-submissions and never reach a Grader.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
