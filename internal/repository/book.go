package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
)

// BookRepository is the catalog store.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// List returns every book in storage order.
	List(ctx context.Context) ([]*domain.Book, error)
	// Update replaces all mutable fields and sets updated_at. Updating an
	// unknown ID is not an error.
	Update(ctx context.Context, id string, fields domain.BookFields, updatedAt time.Time) error
	// Delete removes the book. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
