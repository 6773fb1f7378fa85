package middleware

import (
	"github.com/ErlanBelekov/bookstore/internal/reqctx"
	"github.com/gin-gonic/gin"
)

const maxRequestIDLen = 128

// RequestID injects a request ID into the context and response header.
// An incoming X-Request-ID is kept unless it is empty or oversized; otherwise
// a new UUID v4 is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > maxRequestIDLen {
			id = reqctx.NewRequestID()
		}

		c.Request = c.Request.WithContext(reqctx.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
