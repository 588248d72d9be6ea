// Package cli provides common process bootstrap utilities shared by
// the entrypoints: env loading, logger and config setup, store
// initialization.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/babburibeiro/WebAppCashUp/internal/backend"
	"github.com/babburibeiro/WebAppCashUp/internal/config"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// LoadEnvFile loads the optional .env file for local development.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger honoring LOG_LEVEL and installs
// it as the slog default.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration, exiting the process when
// validation fails.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the configured storage backend, exiting the process
// on failure.
func OpenStore(cfg *config.Config, logger *log.Logger) storage.Store {
	store, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("storage initialization failed", log.FieldError, err)
		os.Exit(1)
	}
	return store
}
