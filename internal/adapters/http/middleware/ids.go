// Package middleware provides the Gin middleware chain of the quotes service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	// maxIDLength caps inbound ids; longer values are replaced.
	maxIDLength = 128
)

// RequestID adopts a well-formed X-Request-ID from the caller or generates a
// UUID. The id is echoed in the response and stored in the request scope.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := inboundID(c, HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

// CorrelationID adopts X-Correlation-ID from the caller. A request that
// starts a chain is correlated by its own request id. Register it after
// RequestID.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := inboundID(c, HeaderCorrelationID)
		if id == "" {
			id = logging.ScopeFrom(c.Request.Context()).RequestID
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(HeaderCorrelationID, id)
		c.Request = c.Request.WithContext(logging.WithCorrelationID(c.Request.Context(), id))

		c.Next()
	}
}

// inboundID returns the header value when it is short printable ASCII
// without spaces, so it can be logged and echoed safely.
func inboundID(c *gin.Context, header string) string {
	id := c.GetHeader(header)
	if id == "" || len(id) > maxIDLength {
		return ""
	}

	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return ""
		}
	}

	return id
}
