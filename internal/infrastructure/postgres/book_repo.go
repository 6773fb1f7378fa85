package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, price, description, stock, created_at, updated_at`

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query := `
		INSERT INTO books (title, author, price, description, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookColumns

	row := r.pool.QueryRow(ctx, query, book.Title, book.Author, book.Price, book.Description, book.Stock, createdAt(book.CreatedAt))
	return scanBook(row)
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update is a no-op for IDs that are unknown or not UUIDs.
func (r *BookRepository) Update(ctx context.Context, id string, fields domain.BookFields, updatedAt time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE books
		SET    title = $2, author = $3, price = $4, description = $5, stock = $6, updated_at = $7
		WHERE  id = $1`,
		id, fields.Title, fields.Author, fields.Price, fields.Description, fields.Stock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Description, &b.Stock, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}
