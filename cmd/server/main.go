package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lead-import-api/internal/api"
	"github.com/lead-import-api/internal/auth"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/database"
	"github.com/lead-import-api/internal/repository"
	"github.com/lead-import-api/internal/service"
	"github.com/lead-import-api/internal/storage"
	"github.com/lead-import-api/internal/supabase"
	"github.com/lead-import-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The configured logger is not available yet
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("env", cfg.Env).Msg("Starting Lead Import API server...")

	healthChecks := []api.HealthCheck{}

	// Bootstrap the schema when a direct connection is configured
	db, err := database.Open(context.Background(), &cfg.Database, log)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		log.Info().Msg("DATABASE_URL not set, skipping migrations")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to connect to database")
	default:
		defer db.Close()
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		healthChecks = append(healthChecks, api.HealthCheck{Name: "database", Check: db.HealthCheck})
	}

	// Remote record store
	store := supabase.New(&cfg.Supabase, log)
	healthChecks = append(healthChecks, api.HealthCheck{Name: "supabase", Check: store.Ping})

	// Initialize repositories
	repos := repository.New(store)

	// Transient upload storage
	uploads, err := storage.NewStore(cfg.Import.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare upload directory")
	}

	strategy, err := auth.NewStrategy(cfg.Auth.PasswordStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to select password strategy")
	}

	// Initialize services
	services := service.NewServices(repos, uploads, strategy, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log, healthChecks...)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// In-flight imports finish before Shutdown returns
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
