package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes an operator's plaintext password with bcrypt at the
// default cost. Only the hash is ever stored on the users table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies a login attempt against the stored operator
// credential hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
