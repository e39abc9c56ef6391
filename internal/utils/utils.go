package utils

import (
	"strings"
	"unicode"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetMaskedWord hides every letter and digit behind an underscore, keeping
// spaces and punctuation, e.g. "ice cream" -> "_ _ _   _ _ _ _ _".
func GetMaskedWord(word string) string {
	if word == "" {
		return ""
	}

	masked := make([]string, 0, len(word))
	for _, r := range word {
		switch {
		case unicode.IsSpace(r):
			masked = append(masked, " ")
		case unicode.IsLetter(r), unicode.IsDigit(r):
			masked = append(masked, "_")
		default:
			masked = append(masked, string(r))
		}
	}
	return strings.Join(masked, " ")
}
