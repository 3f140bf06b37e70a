package mw

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"equipment-tracker-backend/internal/response"
)

// Recovery returns a middleware that recovers from panics
func Recovery(logger *zap.Logger, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", GetRequestID(c)),
					zap.Stack("stacktrace"),
				)

				response.Abort(c, response.Internal(fmt.Errorf("panic: %v", r)), debug)
			}
		}()

		c.Next()
	}
}
