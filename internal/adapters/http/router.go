package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for quote requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles the quote lookup endpoints.
	QuoteHandler *handlers.QuoteHandler

	// Timeout is the deadline applied to quote requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics, then the X-Trace-ID header
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline on the quote routes only
//
// Routes:
//   - /-/ (internal): health, build info and metrics, no deadline
//   - /quotes, /quotes/:id, /hello: public lookup endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	serviceName := "quotes-service"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(routeNotFound)
	engine.NoMethod(methodNotAllowed)

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(serviceName),
		telemetry.TraceIDHeader(),
		middleware.Logging(cfg.Logger),
	)

	// Probes run without a deadline.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	public := engine.Group("")
	if cfg.Timeout > 0 {
		public.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(public, cfg)
}

// setupAPIRoutes registers the public lookup endpoints.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	rg.GET("/hello", handlers.Hello)

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
