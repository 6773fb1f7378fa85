package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/repository"
)

type BookUsecase struct {
	repo repository.BookRepository
	now  func() time.Time
}

func NewBookUsecase(repo repository.BookRepository) *BookUsecase {
	return &BookUsecase{repo: repo, now: time.Now}
}

func (u *BookUsecase) Create(ctx context.Context, fields domain.BookFields) (*domain.Book, error) {
	created, err := u.repo.Create(ctx, &domain.Book{
		Title:       fields.Title,
		Author:      fields.Author,
		Price:       fields.Price,
		Description: fields.Description,
		Stock:       fields.Stock,
		CreatedAt:   u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

func (u *BookUsecase) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update replaces every mutable field. Unknown IDs are not reported.
func (u *BookUsecase) Update(ctx context.Context, id string, fields domain.BookFields) error {
	if err := u.repo.Update(ctx, id, fields, u.now().UTC()); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Delete removes the book if present. Unknown IDs are not reported.
func (u *BookUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
