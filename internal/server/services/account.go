// Package services contains the server-side business logic of the account
// core: registration with policy enforcement, login with rate limiting and
// progressive lockout, and profile reads/updates.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/resumekeeper/internal/common"
	"github.com/skillforge/resumekeeper/internal/logging"
	"github.com/skillforge/resumekeeper/internal/server/auth"
	"github.com/skillforge/resumekeeper/internal/server/models"
	"github.com/skillforge/resumekeeper/internal/server/ratelimit"
	"github.com/skillforge/resumekeeper/internal/server/repositories/accounts"
	"github.com/skillforge/resumekeeper/internal/timex"
)

const (
	delayMin = 500 * time.Millisecond
	delayMax = 3000 * time.Millisecond
)

// AccountService provides the authentication operations:
//   - Register: validate, hash, store
//   - Login: rate-limit gate, lockout gate, hash comparison, token issuance
//   - GetProfile / UpdateProfile: reads and partial edits for the owner
type AccountService struct {
	repo             accounts.Repository
	hasher           *auth.Hasher
	tokens           *auth.TokenManager
	limiter          ratelimit.Limiter
	clock            timex.Clock
	logger           logging.Logger
	lockoutThreshold int
	lockoutDuration  time.Duration

	// delay blunts timing-based username enumeration on failed logins.
	// Replaced in tests; the default sleeps 500–3000 ms.
	delay func()
}

type AccountServiceOptions struct {
	LockoutThreshold int
	LockoutDuration  time.Duration
	Clock            timex.Clock
	Delay            func()
}

func NewAccountService(repo accounts.Repository, hasher *auth.Hasher, tokens *auth.TokenManager,
	limiter ratelimit.Limiter, logger logging.Logger, opts AccountServiceOptions) *AccountService {

	if opts.LockoutThreshold <= 0 {
		opts.LockoutThreshold = 3
	}
	if opts.LockoutDuration <= 0 {
		opts.LockoutDuration = 2 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = timex.RealClock{}
	}
	if opts.Delay == nil {
		opts.Delay = randomizedDelay
	}

	return &AccountService{
		repo:             repo,
		hasher:           hasher,
		tokens:           tokens,
		limiter:          limiter,
		clock:            opts.Clock,
		logger:           logger,
		lockoutThreshold: opts.LockoutThreshold,
		lockoutDuration:  opts.LockoutDuration,
		delay:            opts.Delay,
	}
}

func randomizedDelay() {
	time.Sleep(delayMin + time.Duration(rand.Int63n(int64(delayMax-delayMin)+1)))
}

// Register validates the credentials, hashes the password, and stores the
// account. Validation failures leave no partial state behind.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, err
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "username", username)
	return created, nil
}

// Login runs the gates in order: rate limiter first (it also protects
// nonexistent accounts), then lockout, then the hash comparison. On failure
// it advances the lockout state machine and applies the randomized delay;
// on success it resets the counter and issues a session token.
func (s *AccountService) Login(ctx context.Context, clientAddr, username, password string) (string, error) {
	verdict := s.limiter.Allow(ratelimit.Key(clientAddr, username))
	if !verdict.Allowed {
		s.logger.Warn(ctx, "login rate limit exceeded", "username", username, "ip", clientAddr)
		return "", &common.RateLimitedError{RetryAfter: verdict.RetryAfter}
	}

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.delay()
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("loading account: %w", err)
	}

	now := s.clock.Now()

	if account.Locked(now) {
		// Rejected without comparing the password; the counter is not
		// advanced while the lockout is active.
		return "", &common.AccountLockedError{Until: *account.LockoutUntil}
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		attempts := account.FailedLoginAttempts + 1
		lockoutUntil := account.LockoutUntil
		if attempts >= s.lockoutThreshold {
			until := now.Add(s.lockoutDuration)
			lockoutUntil = &until
			s.logger.Warn(ctx, "account locked after repeated failures", "username", username, "attempts", attempts)
		}
		if err := s.repo.UpdateLoginState(ctx, account.ID, attempts, lockoutUntil); err != nil {
			s.logger.Error(ctx, "saving login failure state", "username", username, "error", err)
		}
		s.delay()
		return "", common.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLoginState(ctx, account.ID, 0, nil); err != nil {
		return "", fmt.Errorf("resetting login state: %w", err)
	}

	token, err := s.tokens.Issue(account.ID, account.Username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "username", username)
	return token, nil
}

// GetProfile returns the account for an authenticated identity.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*models.Account, error) {
	return s.repo.GetByID(ctx, accountID)
}

// UpdateProfile applies a partial profile edit and returns the updated
// account. Credential and lockout fields cannot be changed this way.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, update *models.ProfileUpdate) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	update.Apply(account)

	return s.repo.UpdateProfile(ctx, account)
}
