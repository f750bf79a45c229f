// Package common defines shared constants and sentinel errors used across
// the account core. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")

	// Service-level errors.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. All three surface upstream as a plain
	// authorization rejection; the split exists for logging only.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// ValidationError reports the first unmet constraint category for a
// registration request. Field is "username" or "password".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// AccountLockedError is returned while an account lockout is active.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return "account temporarily locked"
}

// Remaining reports how much of the lockout is left at the given instant.
func (e *AccountLockedError) Remaining(now time.Time) time.Duration {
	if d := e.Until.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RateLimitedError is returned when the per-(client, username) window cap
// is exceeded. RetryAfter is a hint, rounded up to whole seconds at the
// HTTP boundary.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "too many attempts"
}
