package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	// Built up front so the first unknown-email login costs the same as later ones.
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)

	return &PasswordHasher{cost: cost, dummyHash: dummyHash}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func (h *PasswordHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CompareDummy runs one full-cost comparison and always fails. Used when no
// user exists so unknown and known emails take the same time to reject.
func (h *PasswordHasher) CompareDummy(password string) error {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return bcrypt.ErrMismatchedHashAndPassword
}
