package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for account passwords.
const DefaultCost = 10

// Hasher hashes and verifies account passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Out-of-range costs
// fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted digest of password. Every call yields a new digest.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "auth.Hasher.Hash"

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrHashing, err)
	}

	return string(digest), nil
}

// Verify reports whether password matches digest. A mismatch is (false, nil);
// a digest that cannot be interpreted is reported as ErrHashing.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	const op = "auth.Hasher.Verify"

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %v", op, ErrHashing, err)
	}
}
