package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/inder-dev-pro/greenwave-final/internal/common/constants"
)

// PasswordHasher produces and verifies salted one-way password digests.
// Hash embeds a fresh random salt on every call, so hashing the same
// password twice yields different digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: constants.BcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = constants.BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns a non-nil error on mismatch or on a malformed digest.
// Callers treat both the same way: verification failed.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
