package common

import "strings"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop passwords from memory once they have been sent or hashed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail lowercases and trims an email address so that lookups and
// unique constraints treat "Ann@Example.com " and "ann@example.com" alike.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
