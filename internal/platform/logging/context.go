package logging

import (
	"context"
	"log/slog"
)

type (
	loggerKey struct{}
	scopeKey  struct{}
)

var defaultLogger = slog.Default()

// Scope holds the identifiers of the request a context belongs to. Store
// adapters read it to tag queries; the logger in the same context carries
// the same values as attributes.
type Scope struct {
	RequestID     string
	CorrelationID string
	TraceID       string
}

// ScopeFrom returns the request scope of ctx. A nil ctx yields the zero Scope.
func ScopeFrom(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}

	s, _ := ctx.Value(scopeKey{}).(Scope)

	return s
}

// FromContext returns the logger in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, nil)
}

// FromContextOr returns the logger in ctx, or fallback when ctx carries none.
// A nil fallback means the default logger.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	if fallback != nil {
		return fallback
	}

	return defaultLogger
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithRequestID records the request id in the scope and on the logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withScoped(ctx, "request_id", requestID, func(s *Scope) { s.RequestID = requestID })
}

// WithCorrelationID records the correlation id in the scope and on the logger.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return withScoped(ctx, "correlation_id", correlationID, func(s *Scope) { s.CorrelationID = correlationID })
}

// WithTraceID records the trace id in the scope and on the logger.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withScoped(ctx, "trace_id", traceID, func(s *Scope) { s.TraceID = traceID })
}

func withScoped(ctx context.Context, key, value string, set func(*Scope)) context.Context {
	scope := ScopeFrom(ctx)
	set(&scope)

	ctx = context.WithValue(ctx, scopeKey{}, scope)

	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// SetDefault replaces the fallback logger and the slog default.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
