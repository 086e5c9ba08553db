package search

import (
	"strings"
	"unicode/utf8"
)

// Normalize produces the cache key for a query: lowercase and trimmed, so
// "Flowers", " flowers " and "FLOWERS" share one cache slot. Idempotent.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// SplitTerms breaks a query into whitespace-separated terms for the text
// fallback, discarding terms shorter than 2 characters.
func SplitTerms(query string) []string {
	fields := strings.Fields(Normalize(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
