package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/metrics"
	"github.com/ErlanBelekov/bookstore/internal/reqctx"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

const (
	msgTokenMissing = "Token is missing"
	msgTokenInvalid = "Token is invalid"
	msgUserNotFound = "User not found"
	msgForbidden    = "Unauthorized"
)

// authenticator is the subset of AuthUsecase the gate needs.
type authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.User, error)
}

// Auth resolves the Authorization header to a stored user and sets it in the
// gin context. Every failure is answered with 401; only the message differs.
func Auth(auth authenticator, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_gate")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := auth.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			reason, msg := classify(err)
			if reason == "store_error" {
				logger.ErrorContext(ctx, "authenticate", "error", err)
			}
			metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		c.Set(currentUserKey, user)
		c.Request = c.Request.WithContext(reqctx.WithUserID(ctx, user.ID))
		c.Next()
	}
}

// classify maps a gate error to a metric reason and the client message.
func classify(err error) (reason, msg string) {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing", msgTokenMissing
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed", msgTokenInvalid
	case errors.Is(err, domain.ErrTokenSignature):
		return "signature", msgTokenInvalid
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired", msgTokenInvalid
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid", msgTokenInvalid
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found", msgUserNotFound
	default:
		return "store_error", msgTokenInvalid
	}
}

// CurrentUser returns the user set by Auth, or nil outside a gated route.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
