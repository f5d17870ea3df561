package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout attaches a deadline to every request context. The handler
// chain runs synchronously on the request goroutine, so gin.Context
// access stays single-threaded and nothing leaks.
//
// A handler that notices ctx.Err() and returns without writing gets a
// 503 from here. A handler that ignores its context cannot be
// interrupted; every outbound provider call carries the context, so the
// deadline fires at the HTTP-client level regardless.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "timeout",
				"message": "request timed out",
			})
		}
	}
}
