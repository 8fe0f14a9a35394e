// Package main implements the entry point for the catalog API server, which
// serves a JSON-file-backed item catalog over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for the catalog-api server.
// It loads configuration, sets up logging, wires the item store and services,
// and serves HTTP until SIGINT or SIGTERM.
func main() {
	configPath := flag.String("config", "", "path to a config file (default: search for config.yaml)")
	flag.Parse()

	cfg, err := loadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Catalog API server exited")
}
