// Package main provides the entrypoint for the worldloop API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/api"
	"github.com/worldloop/worldloop/internal/api/middleware"
	"github.com/worldloop/worldloop/internal/auth"
	"github.com/worldloop/worldloop/internal/database"
	"github.com/worldloop/worldloop/internal/provider/resilience"
	"github.com/worldloop/worldloop/internal/rules"
	"github.com/worldloop/worldloop/internal/search"
	"github.com/worldloop/worldloop/internal/signals"
	"github.com/worldloop/worldloop/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "worldloop-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting worldloop API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Initialize token service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	tokenService := auth.NewService(auth.Config{SigningKey: jwtSigningKey})

	// Initialize the signal layer. A configured award API gets the full
	// stack: resilient HTTP provider, optional Postgres-backed cache, and
	// the in-process TTL cache. Without one, searches score on a static
	// neutral provider.
	var signalRepo signals.Repository
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, dbErr := database.Connect(ctx, dbConfig)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		signalRepo = signals.NewPostgresRepository(pool)
	}

	var signalProvider signals.Provider
	if baseURL := os.Getenv("AWARD_API_BASE_URL"); baseURL != "" {
		signalProvider = signals.NewHTTPProvider(signals.HTTPProviderConfig{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AWARD_API_KEY"),
			HTTPClient: resilience.NewClient(
				resilience.DefaultClientConfig(signals.HTTPProviderName),
			),
			Logger: log,
		})
		log.Info().Str("base_url", baseURL).Msg("award availability provider initialized")
	} else {
		signalProvider = &signals.StaticProvider{}
		log.Warn().Msg("no award API configured - signals resolve as unknown")
	}

	signalService := signals.NewService(signals.ServiceConfig{
		Provider:   signalProvider,
		Repository: signalRepo,
		Logger:     log,
	})

	// Initialize the rule engine and search stack
	validator := rules.NewValidator(rules.Config{Logger: log})
	graph := search.NewHubGraph()
	generator := search.NewGenerator(search.GeneratorConfig{
		Graph:     graph,
		Validator: validator,
		Logger:    log,
	})
	orchestrator, err := search.NewOrchestrator(search.OrchestratorConfig{
		Generator: generator,
		Scorer:    search.NewScorer(log),
		Signals:   signalService,
		Logger:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search orchestrator")
	}
	log.Info().Msg("search stack initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		TokenService: tokenService,
		Validator:    validator,
		Orchestrator: orchestrator,
		Signals:      signalService,
		Registry:     resilience.GlobalRegistry,
		Graph:        graph,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
