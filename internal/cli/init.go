// Package cli holds the startup steps shared by cmd/bearpaw and
// cmd/bearpaw-exporter.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"bearpaw/internal/config"
	"bearpaw/internal/store"
)

// SetupLogger initializes structured logging with default settings and sets
// the result as the process-wide default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured document store backend, exiting the process
// on failure.
func OpenStore(logger *slog.Logger, cfg *config.Config) store.Store {
	st, err := store.Open(store.Config{
		Type:         store.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresDSN:  cfg.PostgresDSN,
	})
	if err != nil {
		logger.Error("Failed to open document store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Document store ready", "backend", cfg.DataBackend)
	return st
}
