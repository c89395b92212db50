package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestConfigFrom(t *testing.T) {
	app := config.AppConfig{Name: "quotes-service", Version: "1.2.3", Environment: "qa"}

	t.Run("service name from telemetry section", func(t *testing.T) {
		cfg := ConfigFrom(app, config.TelemetryConfig{
			Enabled:      true,
			Endpoint:     "collector:4317",
			ServiceName:  "quotes",
			SamplingRate: 0.5,
			Insecure:     true,
		})

		assert.True(t, cfg.Enabled)
		assert.Equal(t, "collector:4317", cfg.Endpoint)
		assert.Equal(t, "quotes", cfg.ServiceName)
		assert.Equal(t, "1.2.3", cfg.Version)
		assert.Equal(t, "qa", cfg.Environment)
		assert.InDelta(t, 0.5, cfg.SamplingRate, 1e-9)
		assert.True(t, cfg.Insecure)
	})

	t.Run("falls back to app name", func(t *testing.T) {
		cfg := ConfigFrom(app, config.TelemetryConfig{})
		assert.Equal(t, "quotes-service", cfg.ServiceName)
	})
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

// withMeterReader installs a manual metric reader for the duration of the test.
func withMeterReader(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	return reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func TestStoreMetrics_NilIsNoop(t *testing.T) {
	var m *StoreMetrics

	assert.NotPanics(t, func() {
		m.RecordQuery(context.Background(), "find_all", OutcomeSuccess, time.Millisecond, 3)
	})
	assert.NoError(t, m.ObserveCircuit(func() int64 { return 1 }))
}

func TestStoreMetrics_RecordQuery(t *testing.T) {
	reader := withMeterReader(t)

	m, err := NewStoreMetrics("mongodb")
	require.NoError(t, err)

	m.RecordQuery(context.Background(), "find_all", OutcomeSuccess, 20*time.Millisecond, 3)
	m.RecordQuery(context.Background(), "find_by_id", OutcomeNotFound, time.Millisecond, 0)
	require.NoError(t, m.ObserveCircuit(func() int64 { return 1 }))

	got := collect(t, reader)

	total, ok := got["store.query.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "query counter should be recorded")

	var queries int64
	for _, dp := range total.DataPoints {
		queries += dp.Value
	}
	assert.Equal(t, int64(2), queries)

	streamed, ok := got["store.documents.streamed"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "streamed counter should be recorded")
	require.Len(t, streamed.DataPoints, 1)
	assert.Equal(t, int64(3), streamed.DataPoints[0].Value)

	gauge, ok := got["store.circuit.state"].Data.(metricdata.Gauge[int64])
	require.True(t, ok, "circuit gauge should be observed")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(1), gauge.DataPoints[0].Value)
}

func TestMiddleware_RecordsRequests(t *testing.T) {
	reader := withMeterReader(t)

	engine := gin.New()
	engine.Use(Middleware("quotes-test"))
	engine.GET("/quotes", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	engine.GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/quotes", "/-/live", "/-/live"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := collect(t, reader)

	total, ok := got["http.server.request.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var requests int64
	for _, dp := range total.DataPoints {
		requests += dp.Value
	}
	assert.Equal(t, int64(1), requests, "ops endpoints should not be measured")
}

func TestMiddleware_RecordsAbortedRequests(t *testing.T) {
	reader := withMeterReader(t)

	engine := gin.New()
	engine.Use(Middleware("quotes-test"))
	engine.GET("/quotes", func(c *gin.Context) {
		c.Status(http.StatusOK)
		_, _ = c.Writer.WriteString("[")
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quotes", nil))
	})

	got := collect(t, reader)

	total, ok := got["http.server.request.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "aborted request should be counted")
	require.Len(t, total.DataPoints, 1)

	dp := total.DataPoints[0]
	assert.Equal(t, int64(1), dp.Value)

	aborted, ok := dp.Attributes.Value(attribute.Key("http.aborted"))
	require.True(t, ok)
	assert.True(t, aborted.AsBool())

	_, ok = got["http.server.request.duration"].Data.(metricdata.Histogram[float64])
	assert.True(t, ok, "aborted request should have a duration")

	active, ok := got["http.server.active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value, "active requests should return to zero")
	}
}

func TestTraceIDHeader(t *testing.T) {
	prev := otel.GetTracerProvider()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	engine := gin.New()
	engine.Use(Middleware("quotes-test"), TraceIDHeader())
	var scoped string
	engine.GET("/quotes", func(c *gin.Context) {
		scoped = logging.ScopeFrom(c.Request.Context()).TraceID
		c.String(http.StatusOK, "[]")
	})
	engine.GET("/-/ready", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes", nil))
	assert.Len(t, w.Header().Get(HeaderTraceID), 32)
	assert.Equal(t, w.Header().Get(HeaderTraceID), scoped)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
	assert.Empty(t, w.Header().Get(HeaderTraceID))
}
