// Package features computes length-based text metrics used throughout the
// annotate, aggregate, and decide stages.
package features

import (
	"strings"
	"unicode"

	"github.com/impresso/lid-core/models"
)

// Compute returns the letter/non-letter counts and alphabetical ratio of
// text. It is a pure function that never fails: an empty string yields a
// zero-valued TextMetrics with AlphabeticRatio 0.
func Compute(text string) models.TextMetrics {
	var letters, nonLetters, total int
	for _, r := range text {
		total++
		if unicode.IsLetter(r) {
			letters++
		} else {
			nonLetters++
		}
	}

	denom := total
	if denom < 1 {
		denom = 1
	}

	return models.TextMetrics{
		LengthTotal:     total,
		LettersCount:    letters,
		NonLetterCount:  nonLetters,
		AlphabeticRatio: float64(letters) / float64(denom),
	}
}

// StrippedLength returns the rune length of text with leading/trailing
// whitespace removed, the quantity every minimal-text-length gate compares
// against.
func StrippedLength(text string) int {
	return len([]rune(strings.TrimSpace(text)))
}
