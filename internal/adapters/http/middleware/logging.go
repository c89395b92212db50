package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Logging logs one line per completed request with the request scope ids.
// Paths under /-/ and the exact skipPaths are not logged. The enriched
// logger is stored in the request context for handlers and adapters.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		reqLogger := logger.With(scopeAttrs(logging.ScopeFrom(ctx))...)
		c.Request = c.Request.WithContext(logging.WithContext(ctx, reqLogger))

		start := time.Now()

		// Deferred so an aborted stream, which unwinds with a panic, is still logged.
		defer func() {
			r := recover()
			logCompletion(c, reqLogger, path, time.Since(start), r != nil)
			if r != nil {
				panic(r)
			}
		}()

		c.Next()
	}
}

func logCompletion(c *gin.Context, logger *slog.Logger, path string, latency time.Duration, aborted bool) {
	status := c.Writer.Status()
	if aborted && !c.Writer.Written() {
		status = http.StatusInternalServerError
	}

	level := slog.LevelInfo
	switch {
	case aborted, status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", c.Request.Method),
		slog.String("route", c.FullPath()),
		slog.String("path", path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", status),
		slog.Int64("latency_ms", latency.Milliseconds()),
		slog.Int("bytes", c.Writer.Size()),
		slog.String("client_ip", c.ClientIP()),
	}
	if aborted {
		attrs = append(attrs, slog.Bool("aborted", true))
	}

	logger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
}

func scopeAttrs(s logging.Scope) []any {
	attrs := make([]any, 0, 3)
	if s.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", s.RequestID))
	}
	if s.CorrelationID != "" {
		attrs = append(attrs, slog.String("correlation_id", s.CorrelationID))
	}
	if s.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", s.TraceID))
	}

	return attrs
}
