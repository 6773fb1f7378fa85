package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/gin-gonic/gin"
)

type bookUsecaser interface {
	Create(ctx context.Context, fields domain.BookFields) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, id string, fields domain.BookFields) error
	Delete(ctx context.Context, id string) error
}

type BookHandler struct {
	bookUsecase bookUsecaser
	logger      *slog.Logger
}

func NewBookHandler(bookUsecase bookUsecaser, logger *slog.Logger) *BookHandler {
	return &BookHandler{bookUsecase: bookUsecase, logger: logger.With("component", "book_handler")}
}

// Pointers let "required" check presence while still accepting zero values
// such as a price of 0 or an empty description.
type bookRequest struct {
	Title       *string  `json:"title"       binding:"required"`
	Author      *string  `json:"author"      binding:"required"`
	Price       *float64 `json:"price"       binding:"required"`
	Description *string  `json:"description" binding:"required"`
	Stock       *int     `json:"stock"       binding:"required"`
}

func (r bookRequest) fields() domain.BookFields {
	return domain.BookFields{
		Title:       *r.Title,
		Author:      *r.Author,
		Price:       *r.Price,
		Description: *r.Description,
		Stock:       *r.Stock,
	}
}

type bookResponse struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Price       float64    `json:"price"`
	Description string     `json:"description"`
	Stock       int        `json:"stock"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookUsecase.List(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list books", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	resp := make([]bookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, bookResponse{
			ID:          b.ID,
			Title:       b.Title,
			Author:      b.Author,
			Price:       b.Price,
			Description: b.Description,
			Stock:       b.Stock,
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.bookUsecase.Create(c.Request.Context(), req.fields()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create book", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgBookAdded})
}

// PUT /api/books/:id
// Replaces every field. An unknown id still returns 200.
func (h *BookHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.bookUsecase.Update(c.Request.Context(), id, req.fields()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "update book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgBookUpdated})
}

// DELETE /api/books/:id
// Deleting an absent book also returns 200.
func (h *BookHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.bookUsecase.Delete(c.Request.Context(), id); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "delete book", "book_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgBookDeleted})
}
