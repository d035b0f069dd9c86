// Package cli provides common initialization utilities shared by
// cmd/salesdash and cmd/salesdash-cli.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"salesdash/internal/amqp"
	"salesdash/internal/config"
	applog "salesdash/internal/log"
	"salesdash/internal/seed"
	"salesdash/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger builds the application logger from configuration and sets it as
// the default slog logger. A non-nil out replaces stdout when LOG_FILE is unset.
func SetupLogger(cfg *config.Config, out io.Writer) *applog.Logger {
	if cfg.LogFile != "" {
		out = nil
	}
	logger := applog.New(applog.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Component:  applog.ComponentApp,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Output:     out,
	})
	applog.SetDefault(logger)
	return logger
}

// InitSQLite initializes a SQLite repository with the given path.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	sqliteRepo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return sqliteRepo
}

// BuildSource returns the seed source selected by SEED_SOURCE.
func BuildSource(ctx context.Context, cfg *config.Config) (seed.Source, error) {
	switch cfg.SeedSource {
	case "sheets":
		return seed.NewSheetsSource(ctx, seed.SheetsConfig{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
	case "http", "":
		return seed.NewHTTPSource(cfg.SeedURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown seed source %q", cfg.SeedSource)
	}
}

// InitPublisher connects to the broker when AMQP_URL is set. A broker that
// cannot be reached disables events instead of stopping the process; the
// returned close func is always safe to call.
func InitPublisher(logger *applog.Logger, cfg *config.Config) (seed.Publisher, func()) {
	if !cfg.AMQPEnabled() {
		logger.Info("AMQP not configured, import events disabled")
		return nil, func() {}
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Warn("AMQP unavailable, import events disabled", applog.FieldError, err)
		return nil, func() {}
	}

	logger.Info("AMQP publisher ready",
		"exchange", cfg.AMQPExchange,
		"routing_key", cfg.AMQPRoutingKey)
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing AMQP client", applog.FieldError, err)
		}
	}
}

// RunSeed loads the dataset into an empty database, bounded by SEED_TIMEOUT.
func RunSeed(ctx context.Context, logger *applog.Logger, cfg *config.Config, repo *storage.SQLiteRepository, publisher seed.Publisher) (seed.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.SeedTimeout)
	defer cancel()

	source, err := BuildSource(ctx, cfg)
	if err != nil {
		return seed.Result{}, fmt.Errorf("build seed source: %w", err)
	}

	seedLogger := logger.WithComponent(applog.ComponentSeed)
	seedLogger.InfoContext(ctx, "Checking seed data", applog.FieldSeedSource, source.Name())

	res, err := seed.NewSeeder(repo, source, publisher).SeedIfEmpty(ctx)
	if err != nil {
		return res, err
	}
	if !res.Skipped {
		seedLogger.InfoContext(ctx, "Seed completed",
			applog.FieldSeedSource, res.Source,
			applog.FieldInserted, res.Inserted,
			"duration", res.Duration.String())
	}
	return res, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(ctx context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String(), applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()
		if cleanup != nil {
			cleanup(shutdownCtx)
		}

		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}
