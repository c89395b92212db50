package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// ContextKeyTraceID is the gin context key consulted when no span is active.
const ContextKeyTraceID = "trace_id"

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			return http.StatusBadRequest, NewErrorResponseWithDetails(ErrorCodeValidation, err.Error(),
				map[string]string{validationErr.Field: validationErr.Message})
		}

		return http.StatusBadRequest, NewErrorResponse(ErrorCodeValidation, err.Error())

	case errors.Is(err, ErrValidation), errors.Is(err, ErrBinding):
		return http.StatusBadRequest, NewErrorResponseWithDetails(ErrorCodeValidation,
			"invalid request parameters", ValidationErrors(err))

	case domain.IsUnavailable(err):
		// The reason may carry driver internals, so only the service name is exposed.
		msg := "a dependency is temporarily unavailable"

		var unavailable *domain.UnavailableError
		if errors.As(err, &unavailable) {
			msg = unavailable.Service + " is temporarily unavailable"
		}

		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, msg)

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// GetTraceID returns the trace id for the request.
// The active OpenTelemetry span wins; otherwise the gin context value is used.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if v, ok := c.Get(ContextKeyTraceID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}

// HandleError writes the mapped error response for err.
// 5xx responses are logged with the underlying error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.String("error", err.Error()),
			slog.Int("status", status),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}
