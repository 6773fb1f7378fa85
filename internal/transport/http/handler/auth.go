package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

// Pointers make "required" mean present; empty strings reach the use case.
type credentialsRequest struct {
	Email    *string `json:"email"    binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	_, err := h.authUsecase.Register(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserExists})
		case errors.Is(err, domain.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"message": errPasswordTooLong})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgRegistered})
}

// POST /api/login
// Returns {"token": "<jwt>"} on success, 401 on unknown email or wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	signed, err := h.authUsecase.Login(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}
