package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// IsBcryptHash reports whether a stored credential is in the strong format.
func IsBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// VerifyPassword checks a plaintext password against the stored credential.
// needsRehash is true when the stored value matched through the legacy plain
// path and should be upgraded to bcrypt; the caller persists the upgrade
// without blocking the login.
//
// The legacy branch fast-fails on a length mismatch, which leaks one bit of
// timing. That is accepted for the migration path only; the bcrypt branch is
// constant-time throughout.
func VerifyPassword(password, stored string) (ok bool, needsRehash bool) {
	if IsBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}
	if len(password) != len(stored) {
		return false, false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		return false, false
	}
	return true, true
}
