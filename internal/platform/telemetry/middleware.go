package telemetry

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotes-service/telemetry"

	// HeaderTraceID carries the trace id back to the caller.
	HeaderTraceID = "X-Trace-ID"

	// opsPrefix marks probe and scrape endpoints, which are neither traced nor measured.
	opsPrefix = "/-/"
)

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
	responseSize    metric.Int64Histogram
}

// NewMetrics creates HTTP server metrics.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds, including the streamed body"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := meter.Int64Histogram(
		"http.server.response.body.size",
		metric.WithDescription("Size of HTTP response bodies"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
		responseSize:    responseSize,
	}, nil
}

// Middleware returns Gin middleware that traces each request with otelgin
// and records HTTP metrics around it. Requests under /-/ pass through
// untouched. Pair it with TraceIDHeader, registered after it.
func Middleware(serviceName string) gin.HandlerFunc {
	tracing := otelgin.Middleware(serviceName)

	// A metrics failure leaves tracing in place.
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		if isOpsPath(c) {
			c.Next()
			return
		}

		if metrics == nil {
			tracing(c)
			return
		}

		start := time.Now()
		ctx := c.Request.Context()
		route := c.FullPath()

		active := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		)

		metrics.activeRequests.Add(ctx, 1, active)
		defer metrics.activeRequests.Add(ctx, -1, active)

		// Recorded in a defer so an aborted stream, which unwinds with a
		// panic, is still counted.
		defer func() {
			r := recover()
			metrics.record(ctx, c, route, time.Since(start), r != nil)
			if r != nil {
				panic(r)
			}
		}()

		// otelgin runs the rest of the chain.
		tracing(c)
	}
}

func (m *Metrics) record(ctx context.Context, c *gin.Context, route string, elapsed time.Duration, aborted bool) {
	status := c.Writer.Status()
	if aborted && !c.Writer.Written() {
		status = http.StatusInternalServerError
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
		attribute.Bool("http.aborted", aborted),
	)

	m.requestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.requestTotal.Add(ctx, 1, attrs)

	if size := c.Writer.Size(); size > 0 {
		m.responseSize.Record(ctx, int64(size), attrs)
	}
}

// TraceIDHeader returns middleware that sets X-Trace-ID from the active span
// and adds the trace id to the request scope. It runs before the handler so
// the header is sent even when the body is streamed.
func TraceIDHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			id := sc.TraceID().String()
			c.Header(HeaderTraceID, id)
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), id))
		}

		c.Next()
	}
}

func isOpsPath(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, opsPrefix)
}
