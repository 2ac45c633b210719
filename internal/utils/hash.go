package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword computes a salted bcrypt hash of the given plaintext
// password using the default cost. Each call produces a different hash for
// the same input because bcrypt embeds a fresh random salt.
//
// Returns the hash in bcrypt's standard encoded form, ready to be stored
// in the users table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. A nil comparison error means a match; any error (including
// a malformed hash) is reported as a mismatch.
func VerifyPassword(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
