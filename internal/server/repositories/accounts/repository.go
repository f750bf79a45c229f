// Package accounts persists credential identities: username, password hash,
// failure counter, lockout expiry, and the editable profile.
package accounts

import (
	"context"
	"time"

	"github.com/skillforge/resumekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new account. Returns common.ErrDuplicateAccount when
	// the username is taken.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByUsername returns common.ErrNotFound when no such account exists.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByID returns common.ErrNotFound when no such account exists.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// UpdateLoginState writes the failure counter and lockout expiry. The
	// values are computed from the state just read by the caller
	// (read-then-conditional-write; last-writer-wins under concurrent logins).
	UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockoutUntil *time.Time) error

	// UpdateProfile writes the profile columns of the account and refreshes
	// updated_at. Credential and lockout fields are untouched.
	UpdateProfile(ctx context.Context, account *models.Account) (*models.Account, error)
}
