package service

import (
	"errors"
	"fmt"

	"github.com/Payphone-Digital/videotube/internal/constants"
	apperrors "github.com/Payphone-Digital/videotube/internal/errors"
	"github.com/Payphone-Digital/videotube/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies user passwords
type CredentialStore struct {
	cost int
}

func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = constants.BcryptCost
	}
	return &CredentialStore{cost: cost}
}

// Hash returns a salted bcrypt hash; two calls on the same input differ
func (s *CredentialStore) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A wrong password is
// (false, nil); only a malformed stored hash returns an error.
func (s *CredentialStore) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("stored password hash is malformed: %w", err)
	}
}

// ApplyPassword sets user.Password to the hash of plaintext unless the
// stored hash already matches it. It reports whether the hash changed.
func (s *CredentialStore) ApplyPassword(user *model.User, plaintext string) (bool, error) {
	if plaintext == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "password is required")
	}

	if user.Password != "" {
		same, err := s.Verify(plaintext, user.Password)
		if err == nil && same {
			return false, nil
		}
	}

	hashed, err := s.Hash(plaintext)
	if err != nil {
		return false, err
	}
	user.Password = hashed
	return true, nil
}
