package utils

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored password hashes
const PasswordCost = 10

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSecurePassword creates a random secure password of the specified length
func GenerateSecurePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	// base64 needs fewer raw bytes than output characters
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	password := base64.RawURLEncoding.EncodeToString(b)
	return password[:length], nil
}
