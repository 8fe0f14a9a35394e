package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and an optional config file.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig reports the effective configuration once logging is set up.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"shutdown_timeout_sec", cfg.Server.ShutdownTimeoutSec)
	logger.Debug("Store configuration",
		"data_path", cfg.Store.DataPath,
		"create_if_missing", cfg.Store.CreateIfMissing,
		"watch", cfg.Store.Watch)
	logger.Debug("Task configuration",
		"worker_count", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize)
}
