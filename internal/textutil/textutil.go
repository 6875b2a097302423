// Package textutil provides text normalization helpers shared by the
// harvesting tool and the augmentation filters.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and runs of whitespace with a
// single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// NormalizeValue canonicalizes a harvested candidate value: whitespace
// collapsed, edges trimmed, lowercased.
func NormalizeValue(text string) string {
	return strings.ToLower(strings.TrimSpace(NormalizeWhitespaces(text)))
}

// IsAlpha reports whether s is non-empty and consists of letters only.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
