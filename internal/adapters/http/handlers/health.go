// Package handlers provides the HTTP handlers for the quote lookups and the
// /-/ operational endpoints.
package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// BuildInfo is injected at link time with -ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills GoVersion from the running binary.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// Collector exposes the build as a constant quotes_build_info gauge.
func (b BuildInfo) Collector() prometheus.Collector {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "quotes_build_info",
		Help: "Build information of the running quotes service. Always 1.",
	}, []string{"version", "commit", "goversion"})
	g.WithLabelValues(b.Version, b.Commit, b.GoVersion).Set(1)

	return g
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithHealthLogger logs readiness failures to logger.
func WithHealthLogger(logger *slog.Logger) HealthOption {
	return func(h *HealthHandler) {
		h.logger = logger
	}
}

// WithGatherer serves /-/metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) HealthOption {
	return func(h *HealthHandler) {
		h.gatherer = g
	}
}

// HealthHandler serves the /-/ endpoints. A nil registry reports ready.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
	started   time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		logger:    slog.Default(),
		gatherer:  prometheus.DefaultGatherer,
		started:   time.Now(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type livenessResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// Liveness answers 200 while the process runs. It never touches the store.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs the registered store checks. Degraded stores still take
// traffic; only an unhealthy result answers 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.registry == nil {
		c.JSON(http.StatusOK, readinessResponse{Status: string(ports.HealthStatusHealthy)})
		return
	}

	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	switch result.Status {
	case ports.HealthStatusUnhealthy:
		status = http.StatusServiceUnavailable
		h.logger.WarnContext(c.Request.Context(), "readiness check failed", checkAttrs(result)...)
	case ports.HealthStatusDegraded:
		h.logger.InfoContext(c.Request.Context(), "readiness degraded", checkAttrs(result)...)
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

func checkAttrs(result *ports.HealthResult) []any {
	attrs := make([]any, 0, len(result.Checks))
	for name, check := range result.Checks {
		if check.Status != ports.HealthStatusHealthy {
			attrs = append(attrs, slog.String(name, check.Message))
		}
	}

	return attrs
}

// BuildInfoHandler serves /-/build.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler serves the Prometheus exposition of the handler's gatherer.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(h.logger.Handler(), slog.LevelError),
	})
}

// RegisterHealthRoutes registers live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(h.MetricsHandler()))
}

// RegisterHealthRoutesOnEngine mounts the health routes under /-.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
