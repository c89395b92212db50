package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Recovery turns a handler panic into a logged 500. It must be first in the
// chain. http.ErrAbortHandler is re-raised so a half-written quote stream
// ends with a dropped connection.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return RecoveryWithWriter(logger, nil)
}

// RecoveryWithWriter returns recovery middleware that also hands the panic
// value and stack to stackHandler when it is non-nil.
func RecoveryWithWriter(logger *slog.Logger, stackHandler func(err any, stack []byte)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(r)
				}

				stack := debug.Stack()

				if stackHandler != nil {
					stackHandler(r, stack)
				}

				traceID := dto.GetTraceID(c)

				logging.FromContextOr(c.Request.Context(), logger).Error("panic recovered",
					slog.Any("panic", r),
					slog.String("route", c.FullPath()),
					slog.String("method", c.Request.Method),
					slog.String("stack", string(stack)),
				)

				// A streamed body may already be on the wire; nothing can be appended.
				if c.Writer.Written() {
					c.Abort()
					return
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
					dto.ErrorCodeInternal,
					"an internal error occurred",
				).WithTraceID(traceID))
			}
		}()

		c.Next()
	}
}
