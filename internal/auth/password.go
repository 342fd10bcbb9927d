// Package auth provides the credential primitives: password hashing,
// one-time passcodes and session token issuance.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost 10 відповідає вартості, з якою хешувалися існуючі паролі.
const bcryptCost = 10

// HashPassword returns a salted one-way digest safe to store.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches digest.
// A malformed digest is treated as a mismatch, never an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
