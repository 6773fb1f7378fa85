package password

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Hash returns a bcrypt hash of plaintext using DefaultCost. Each call uses a
// fresh random salt.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash never matches.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
