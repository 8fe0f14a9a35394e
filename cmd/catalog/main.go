// Package main is the terminal browser for a running catalog API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/catalog-api/internal/client"
	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	apiURL := fs.String("api-url", envOr("CATALOG_API_URL", "http://localhost:8080"), "base URL of the catalog API")
	logFile := fs.String("log-file", "", "write debug logs to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs only go to a file when asked
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "debug"}, out)
	if err != nil {
		return err
	}

	c, err := client.New(*apiURL, client.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, c); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
