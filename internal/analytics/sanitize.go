package analytics

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)
)

// SanitizeQuery strips personal data from a recorded search query, collapses
// whitespace runs and caps the length. Emails and phone numbers become
// placeholders so search stats never leak contact details.
func SanitizeQuery(query string, maxLen int) string {
	out := strings.Join(strings.Fields(query), " ")
	out = emailPattern.ReplaceAllString(out, "<email>")
	out = phonePattern.ReplaceAllString(out, "<phone>")
	if runes := []rune(out); maxLen > 0 && len(runes) > maxLen {
		out = string(runes[:maxLen])
	}
	return out
}
