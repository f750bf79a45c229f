package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/skillforge/resumekeeper/internal/common"
	"github.com/skillforge/resumekeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// development. Lockout state written here does not survive restarts, so
// production deployments must use the Postgres repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.Account
	username map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:     make(map[string]*models.Account),
		username: make(map[string]string),
	}
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	if a.LockoutUntil != nil {
		t := *a.LockoutUntil
		c.LockoutUntil = &t
	}
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.username[account.Username]; ok {
		return nil, common.ErrDuplicateAccount
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	r.byID[account.ID] = cloneAccount(account)
	r.username[account.Username] = account.ID
	return account, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.username[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (r *InMemoryRepository) UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockoutUntil *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.FailedLoginAttempts = failedAttempts
	a.LockoutUntil = lockoutUntil
	return nil
}

func (r *InMemoryRepository) UpdateProfile(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[account.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	account.FailedLoginAttempts = stored.FailedLoginAttempts
	account.LockoutUntil = stored.LockoutUntil
	account.PasswordHash = stored.PasswordHash
	account.UpdatedAt = time.Now()

	r.byID[account.ID] = cloneAccount(account)
	return account, nil
}
