package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skillforge/resumekeeper/internal/common"
)

// fakeClock returns a controllable instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), 30*time.Minute, nil)

	tok, err := m.Issue("acc-123", "john_doe")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	id, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id.AccountID != "acc-123" || id.Username != "john_doe" {
		t.Fatalf("identity mismatch: got %+v", id)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	m := NewTokenManager([]byte("secret"), 30*time.Minute, clock)

	tok, err := m.Issue("acc-1", "u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Just before expiry: accepted.
	clock.now = clock.now.Add(30*time.Minute - time.Second)
	if _, err := m.Verify(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	// At and after expiry: rejected.
	clock.now = clock.now.Add(2 * time.Second)
	_, err = m.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	right := NewTokenManager([]byte("right-secret"), time.Hour, nil)
	wrong := NewTokenManager([]byte("wrong-secret"), time.Hour, nil)

	tok, err := right.Issue("acc-2", "u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := wrong.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), time.Hour, nil)
	tok, err := m.Issue("acc-3", "u3")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	parts[1] = "eyJzdWIiOiJzb21lYm9keS1lbHNlIn0"
	if _, err := m.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("k"), time.Hour, nil)
	if _, err := m.Verify("not.a.jwt"); !errors.Is(err, common.ErrTokenMalformed) {
		t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
	}
}
