package repository

import (
	"context"

	"github.com/ErlanBelekov/bookstore/internal/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its store-assigned ID.
	// Implementations enforce email uniqueness and return domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound for unknown or malformed IDs.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
