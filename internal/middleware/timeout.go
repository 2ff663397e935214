package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultTimeout bounds a request's database work.
const DefaultTimeout = 30 * time.Second

// Timeout attaches a deadline to the request context. Repositories honour it,
// so a slow query surfaces as a context error from the handler.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
