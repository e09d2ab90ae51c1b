package model

import "regexp"

// emailPattern matches the local@domain.tld shape; anything stricter belongs
// to the backend.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
