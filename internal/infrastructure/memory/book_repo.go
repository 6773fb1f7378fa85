package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/google/uuid"
)

// BookRepository keeps books in insertion order.
type BookRepository struct {
	mu    sync.RWMutex
	books []*domain.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	b := *book
	b.ID = uuid.NewString()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.books = append(r.books, &b)
	r.mu.Unlock()

	return cloneBook(&b), nil
}

func (r *BookRepository) List(_ context.Context) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, cloneBook(b))
	}
	return out, nil
}

func (r *BookRepository) Update(_ context.Context, id string, fields domain.BookFields, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	b := r.books[i]
	b.Title = fields.Title
	b.Author = fields.Author
	b.Price = fields.Price
	b.Description = fields.Description
	b.Stock = fields.Stock
	b.UpdatedAt = &updatedAt
	return nil
}

func (r *BookRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.books = slices.Delete(r.books, i, i+1)
	}
	return nil
}

func (r *BookRepository) Ping(_ context.Context) error { return nil }

func (r *BookRepository) indexOf(id string) int {
	return slices.IndexFunc(r.books, func(b *domain.Book) bool { return b.ID == id })
}

func cloneBook(b *domain.Book) *domain.Book {
	out := *b
	if b.UpdatedAt != nil {
		t := *b.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}
