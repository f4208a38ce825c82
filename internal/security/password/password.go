package password

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const defaultCost = 12

// MaxHashBytes is the longest input bcrypt accepts.
const MaxHashBytes = 72

var (
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a number")
	ErrInvalidCost  = errors.New("bcrypt cost out of range")

	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

func Hash(plain string) (string, error) {
	return HashWithCost(plain, defaultCost)
}

func HashWithCost(plain string, cost int) (string, error) {
	if !MeetsMinimumRequirements(plain) {
		return "", ErrWeakPassword
	}
	if len(plain) > MaxHashBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", ErrInvalidCost
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func Verify(plain, encoded string) bool {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return false
	}
	if strings.HasPrefix(encoded, "$2a$") || strings.HasPrefix(encoded, "$2b$") || strings.HasPrefix(encoded, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
	}
	return false
}
