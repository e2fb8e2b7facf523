// Package api provides the HTTP API for worldloop.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/api/handler"
	"github.com/worldloop/worldloop/internal/api/middleware"
	"github.com/worldloop/worldloop/internal/auth"
	"github.com/worldloop/worldloop/internal/provider/resilience"
	"github.com/worldloop/worldloop/internal/rules"
	"github.com/worldloop/worldloop/internal/search"
	"github.com/worldloop/worldloop/internal/signals"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	TokenService *auth.Service
	Validator    *rules.Validator
	Orchestrator *search.Orchestrator
	Signals      *signals.Service
	Registry     *resilience.Registry
	Graph        *search.HubGraph
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "worldloop-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.Signals)
	validateHandler := handler.NewValidateHandler(cfg.Validator)
	searchHandler := handler.NewSearchHandler(cfg.Orchestrator)
	metadataHandler := handler.NewMetadataHandler(cfg.Graph)
	signalsHandler := handler.NewSignalsHandler(cfg.Signals)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.TokenService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/enums", metadataHandler.GetEnums)
			r.Get("/airports", metadataHandler.ListAirports)
			r.Get("/carriers", metadataHandler.ListCarriers)
		})

		// Validation endpoint - standard rate limiting
		r.With(standardRateLimit).Post("/validate", validateHandler.Validate)

		// Search endpoint - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/search", searchHandler.Search)

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Route("/signals", func(r chi.Router) {
				r.Get("/stats", signalsHandler.Stats)
				r.Post("/invalidate", signalsHandler.Invalidate)
			})
		})
	})

	return r
}
