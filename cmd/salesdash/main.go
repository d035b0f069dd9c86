package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"salesdash/internal/cli"
	apphttp "salesdash/internal/http"
	applog "salesdash/internal/log"
	"salesdash/internal/stats"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, nil)

	logger.Info("Starting salesdash",
		"port", cfg.Port,
		"db_path", cfg.SQLiteDBPath,
		applog.FieldSeedSource, cfg.SeedSource,
		applog.FieldOperation, applog.OpStartup)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	publisher, closePublisher := cli.InitPublisher(logger.WithComponent(applog.ComponentAMQP), cfg)
	defer closePublisher()

	// Seeding problems leave an empty table; the API still answers with zero counts.
	if _, err := cli.RunSeed(context.Background(), logger, cfg, repo, publisher); err != nil {
		logger.Error("Error initializing database", applog.FieldError, err, applog.FieldOperation, applog.OpSeed)
	}

	srv := apphttp.NewServer(":"+cfg.Port, stats.NewService(repo), repo, logger)
	srv.MaxHeaderBytes = 1 << 16 // 64KB
	if err := srv.TrustProxies(cfg.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxy", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Server is running", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	<-done
	logger.Info("Server stopped gracefully")
}
