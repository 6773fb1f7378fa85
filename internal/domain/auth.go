package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrForbidden          = errors.New("forbidden")
)

// Gate failures. Each one is a distinct value so callers can tell them apart,
// even though clients see the same 401 for most of them.
var (
	ErrTokenMissing   = errors.New("token is missing")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// CanManageCatalog reports whether u may add, update or delete books.
func (u *User) CanManageCatalog() bool {
	return u != nil && u.IsAdmin
}
