package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 12

// MinPasswordLength is the shortest password accepted anywhere.
const MinPasswordLength = 6

var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooWeak  = errors.New("password must contain at least one uppercase letter, one lowercase letter, and one number")
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// An empty hash never matches, so accounts created through Google cannot sign in with a password.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength applies the rules for a newly chosen password.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrPasswordTooWeak
	}
	return nil
}
