package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Hasher creates argon2id hashes and verifies both argon2id and legacy bcrypt hashes.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash, and whether hash should be replaced.
	Verify(password, hash string) (ok bool, needsRehash bool, err error)
}

type PasswordHasher struct {
	params *argon2id.Params
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{params: argon2id.DefaultParams}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (h *PasswordHasher) Verify(password, hash string) (bool, bool, error) {
	if isBcrypt(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		if err != nil {
			return false, false, fmt.Errorf("verify bcrypt hash: %w", err)
		}
		return true, true, nil
	}

	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, false, fmt.Errorf("verify password: %w", err)
	}
	return ok, false, nil
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
