// Package auth implements the credential-side building blocks of the account
// core: registration policy checks, password hashing, and signed session
// tokens.
package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skillforge/resumekeeper/internal/common"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)

const (
	specialChars      = "!@#$%^&*()_-+=<>?"
	minPasswordLength = 16
)

// ValidateUsername checks the username shape rule. It reports the failure as
// a *common.ValidationError so the boundary can map it to a 400.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return &common.ValidationError{
			Field:  "username",
			Reason: "must be 4-20 characters and contain only letters, numbers, or underscores",
		}
	}
	return nil
}

// ValidatePassword checks password composition: an uppercase letter, a
// digit, a special character and a minimum length of 16. The first unmet
// rule is reported.
func ValidatePassword(password string) error {
	fail := func(reason string) error {
		return &common.ValidationError{Field: "password", Reason: reason}
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fail("must contain an uppercase letter")
	case !hasDigit:
		return fail("must contain a number")
	case !hasSpecial:
		return fail("must contain a special character")
	// Length is measured in characters, not bytes, so multi-byte runes
	// count once.
	case utf8.RuneCountInString(password) < minPasswordLength:
		return fail("must be at least 16 characters long")
	}
	return nil
}

// ValidateCredentials runs the username rule first, then the password
// rules, so registration rejects before any hashing or storage occurs.
func ValidateCredentials(username, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	return ValidatePassword(password)
}
