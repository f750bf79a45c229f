package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is used when no cost factor is configured.
const DefaultHashCost = 12

// Hasher produces and verifies salted one-way password hashes using bcrypt.
// The cost factor is set per install via configuration.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext. The plaintext is never
// stored or logged.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether candidate matches the stored hash. bcrypt performs
// the comparison in constant time.
func (h *Hasher) Compare(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
