package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost used when hashing account passwords
const BcryptCost = 12

// HashPassword hashes a password for use in the account table
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a plain password
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// isBcryptHash reports whether a configured secret is a bcrypt hash
func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2")
}

// matchSecret checks password against a configured secret which is either a
// bcrypt hash or a plain value.
func matchSecret(secret, password string) bool {
	if isBcryptHash(secret) {
		return CheckPassword(secret, password)
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}
