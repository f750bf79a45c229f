package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillforge/resumekeeper/internal/common"
	"github.com/skillforge/resumekeeper/internal/timex"
)

// Identity is the decoded content of a verified session token.
type Identity struct {
	AccountID string
	Username  string
}

// Claims includes the registered claims plus the username. The account id
// travels in the Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenManager signs and verifies HS256 session tokens. Validity is purely
// cryptographic and time-based; nothing is persisted server-side.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	clock    timex.Clock
}

func NewTokenManager(secret []byte, validity time.Duration, clock timex.Clock) *TokenManager {
	if clock == nil {
		clock = timex.RealClock{}
	}
	return &TokenManager{secret: secret, validity: validity, clock: clock}
}

// Validity returns the configured token lifetime. The session cookie max
// age mirrors it.
func (m *TokenManager) Validity() time.Duration { return m.validity }

// Issue creates a signed token binding the account id and username,
// expiring after the configured validity.
func (m *TokenManager) Issue(accountID, username string) (string, error) {
	now := m.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Username: username,
	})
	return token.SignedString(m.secret)
}

// Verify checks signature, shape, and expiry, and returns the embedded
// identity. Failure reasons stay distinct for logging but all of them must
// surface upstream as a bare authorization rejection.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, common.ErrTokenMalformed
		default:
			return Identity{}, common.ErrInvalidToken
		}
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{AccountID: claims.Subject, Username: claims.Username}, nil
}
