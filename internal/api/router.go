package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/gigboard/marketplace/docs"
	"github.com/gigboard/marketplace/internal/api/handler"
	"github.com/gigboard/marketplace/internal/core/ports"
	"github.com/gigboard/marketplace/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Service        ports.MarketplaceService
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	// Readiness lists the external dependencies probed by /health/ready.
	Readiness map[string]handlers.Pinger
	// RateLimitRPS caps requests per second per client IP; zero disables it.
	RateLimitRPS float64
	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
	}))
	if deps.RateLimitRPS > 0 {
		e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(deps.RateLimitRPS))))
	}

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Service)
	jobHandler := handler.NewJobHandler(deps.Service, deps.Idempotency, deps.IdempotencyTTL, deps.Logger)

	v1 := e.Group("/v1")

	// --- User routes ---
	v1.POST("/users", userHandler.Register)
	v1.GET("/users/:id", userHandler.Get)
	v1.GET("/users/:id/reputation", userHandler.Reputation)
	v1.GET("/users/:id/reputation/percentage", userHandler.CompletionRate)

	// --- Job routes ---
	v1.POST("/jobs", jobHandler.Post)
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/open", jobHandler.ListOpen)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.PUT("/jobs/:id/status", jobHandler.SetStatus)
	v1.POST("/jobs/:id/assign", jobHandler.Assign)
	v1.POST("/jobs/:id/complete", jobHandler.Complete)
	v1.POST("/jobs/:id/disputes", jobHandler.ResolveDispute)

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
