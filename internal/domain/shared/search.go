package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for comparison: accents are stripped and case is folded,
// so "Pañales Gómez" and "panales gomez" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(strings.TrimSpace(stripped))
}

// Matches reports whether any of fields contains query, ignoring accents and case.
// An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// Search returns the items for which any of the fields returned by text matches query
func Search[T any](items []T, query string, text func(T) []string) []T {
	if Fold(query) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(query, text(item)...) {
			out = append(out, item)
		}
	}
	return out
}
