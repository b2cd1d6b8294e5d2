package openapi

import (
	"strings"
	"unicode"
)

// Labeler turns a property name or enum value into a human readable label.
type Labeler func(name string) string

// DefaultLabeler splits on underscores, dashes, spaces and camelCase
// boundaries and title cases each word: "publishedAt" becomes "Published At".
func DefaultLabeler(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, titleWord(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && wordBoundary(runes[i-1], r) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return strings.Join(words, " ")
}

func wordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func titleWord(word string) string {
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}
