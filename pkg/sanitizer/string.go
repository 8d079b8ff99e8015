package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses internal
// runs of whitespace into single spaces. Idempotent.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeISBN strips surrounding whitespace only. Digits, hyphens and
// case are preserved; ISBNs are matched literally and never checksum
// validated.
func NormalizeISBN(isbn string) string {
	return strings.TrimSpace(isbn)
}
