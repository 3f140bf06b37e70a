package mw

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/response"
)

// Timeout bounds the request context by d. Store calls observe the deadline
// and fail with context.DeadlineExceeded; a handler that returns without
// writing after the deadline gets a REQUEST_TIMEOUT response. A non-positive
// d disables the bound.
func Timeout(d time.Duration, debug bool) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			response.Abort(c, response.RequestTimeout(ctx.Err()), debug)
		}
	}
}
