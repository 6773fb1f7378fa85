package middleware

import (
	"net/http"

	"github.com/ErlanBelekov/bookstore/internal/metrics"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after Auth. It rejects users who may not manage the
// catalog with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).CanManageCatalog() {
			metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": msgForbidden})
			return
		}
		c.Next()
	}
}
