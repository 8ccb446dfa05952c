package auth

import (
	"errors"
	"strings"
	"unicode"
)

const passwordPunctuation = `!@#$%^&*(),.?":{}|<>`

// ErrWeakPassword is deliberately a single composite message; it never
// reveals which individual rule a candidate password failed.
var ErrWeakPassword = errors.New(
	`password must be at least 10 characters and contain an uppercase letter, a lowercase letter, a digit, and one of ` + passwordPunctuation)

// ValidatePassword applies the registration password policy. It is not
// applied at verification time, so policy changes never lock out existing
// accounts.
func ValidatePassword(plaintext string) error {
	if len(plaintext) < 10 {
		return ErrWeakPassword
	}

	var upper, lower, digit, punct bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordPunctuation, r):
			punct = true
		}
	}

	if !upper || !lower || !digit || !punct {
		return ErrWeakPassword
	}
	return nil
}
