package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout imposes a deadline on every request context. Collaborator
// calls inherit it, so a stalled store or object-store call fails as
// Unavailable instead of hanging until the client gives up.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
