// Package main implements the entry point for the interview prep API
// server, which generates tailored interview questions through an LLM
// provider with rate limiting and multi-stage response parsing.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/interview-prep-api/internal/config"
	"github.com/phrazzld/interview-prep-api/internal/platform/logger"
)

// main initializes configuration, logging, and the dependency graph,
// then runs the HTTP server until shutdown.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"rate_limit_max_calls", cfg.RateLimit.MaxCalls,
		"rate_limit_window_minutes", cfg.RateLimit.WindowMinutes)

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	return app, nil
}
