// Package main provides the entrypoint for the worldloop background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldloop/worldloop/internal/database"
	"github.com/worldloop/worldloop/internal/provider/resilience"
	"github.com/worldloop/worldloop/internal/signals"
	"github.com/worldloop/worldloop/internal/telemetry"
	"github.com/worldloop/worldloop/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "worldloop-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting worldloop worker")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"
	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    os.Getenv("APP_ENV"),
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// The worker exists to warm the signal cache, so a configured award API
	// is required rather than optional.
	baseURL := os.Getenv("AWARD_API_BASE_URL")
	if baseURL == "" {
		log.Fatal().Msg("AWARD_API_BASE_URL is required")
	}

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
			Str("database", dbConfig.Database).
			Msg("database connected")
		signalRepo = signals.NewPostgresRepository(pool)
	}

	signalService := signals.NewService(signals.ServiceConfig{
		Provider: signals.NewHTTPProvider(signals.HTTPProviderConfig{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AWARD_API_KEY"),
			HTTPClient: resilience.NewClient(
				resilience.DefaultClientConfig(signals.HTTPProviderName),
			),
			Logger: log,
		}),
		Repository: signalRepo,
		Logger:     log,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  log,
		Signals: signalService,
	})

	// Health check endpoint for the container platform
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Prefer Pub/Sub triggered refreshes; fall back to a local ticker when
	// no subscription is configured.
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription != "" {
		handler, psErr := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        os.Getenv("PUBSUB_PROJECT_ID"),
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if psErr != nil {
			log.Fatal().Err(psErr).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if recvErr := handler.Start(ctx); recvErr != nil && ctx.Err() == nil {
				log.Error().Err(recvErr).Msg("pubsub receive stopped")
			}
		}()
	} else {
		interval := 6 * time.Hour
		if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
			if d, parseErr := time.ParseDuration(v); parseErr == nil {
				interval = d
			}
		}
		log.Info().Dur("interval", interval).Msg("no pubsub subscription, running on a local schedule")

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			refreshJob.Run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
