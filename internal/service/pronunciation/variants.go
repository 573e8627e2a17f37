package pronunciation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// ExpandVariants returns the page titles to try for word, in order: the
// trimmed word, its lower-cased form and its first-letter-capitalized form.
// Identical forms are collapsed to their first occurrence.
func ExpandVariants(word string) ([]string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	forms := [...]string{trimmed, strings.ToLower(trimmed), capitalizeFirst(trimmed)}

	variants := make([]string, 0, len(forms))
	for _, f := range forms {
		if !slices.Contains(variants, f) {
			variants = append(variants, f)
		}
	}
	return variants, nil
}

// capitalizeFirst upper-cases the first rune and leaves the rest untouched.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
