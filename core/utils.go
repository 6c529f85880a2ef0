package core

import "strings"

// CleanString trims surrounding whitespace and optionally lowercases the
// result; identity fields (usernames, emails, codes) pass through here
// before validation.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
