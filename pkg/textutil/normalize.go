package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, and strips diacritics so that accented and
// unaccented spellings compare equal ("Café" == "cafe").
func Normalize(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, trimmed)
	if err != nil {
		return trimmed
	}
	return out
}

// MatchesQuery reports whether every whitespace-separated term of query
// appears as a substring of haystack, after normalizing both sides.
// An empty query matches everything.
func MatchesQuery(haystack, query string) bool {
	terms := strings.Fields(Normalize(query))
	if len(terms) == 0 {
		return true
	}
	normalized := Normalize(haystack)
	for _, term := range terms {
		if !strings.Contains(normalized, term) {
			return false
		}
	}
	return true
}

// Terms splits a query into its normalized search terms.
func Terms(query string) []string {
	return strings.Fields(Normalize(query))
}
