// Package auth holds the server-side credential primitives: password
// hashing, session token issuing and validation, and the session cookie.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/l1t48/Test-backend/internal/common"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher is a PasswordHasher backed by bcrypt. The hash string carries
// the algorithm version, cost and salt, so Verify needs nothing else.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the given cost. Costs outside
// bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password. Empty passwords and
// passwords longer than 72 bytes are rejected with common.ErrInvalidInput.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", common.ErrInvalidInput
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password longer than 72 bytes", common.ErrInvalidInput)
		}
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash simply
// does not match.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
