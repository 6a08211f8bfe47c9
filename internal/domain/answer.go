package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeAnswer trims surrounding whitespace and case-folds s. No other
// Unicode normalization is applied.
func NormalizeAnswer(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func AnswerMatches(guess, answer string) bool {
	return NormalizeAnswer(guess) == NormalizeAnswer(answer)
}
