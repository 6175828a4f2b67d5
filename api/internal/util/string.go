package util

import "strings"

// StripCodeFences removes a surrounding markdown fence (``` or ```json)
// that models like to wrap JSON answers in.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimPrefix(s, "JSON")
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
