package domain

import "time"

type Book struct {
	ID          string
	Title       string
	Author      string
	Price       float64
	Description string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   *time.Time // nil until the first update
}

// BookFields are the mutable fields of a book. Updates replace all of them.
type BookFields struct {
	Title       string
	Author      string
	Price       float64
	Description string
	Stock       int
}
