package quiz

import "strings"

// Check compares a submitted answer against the expected one. Both sides
// are trimmed and lower-cased; anything else must match exactly.
func Check(submitted, expected string) bool {
	s := normalize(submitted)
	if s == "" {
		return false
	}
	return s == normalize(expected)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
