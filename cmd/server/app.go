package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/interview-prep-api/internal/api"
	"github.com/phrazzld/interview-prep-api/internal/config"
	"github.com/phrazzld/interview-prep-api/internal/cost"
	"github.com/phrazzld/interview-prep-api/internal/generation"
	"github.com/phrazzld/interview-prep-api/internal/parser"
	"github.com/phrazzld/interview-prep-api/internal/platform/gemini"
	"github.com/phrazzld/interview-prep-api/internal/prompt"
	"github.com/phrazzld/interview-prep-api/internal/ratelimit"
	"github.com/phrazzld/interview-prep-api/internal/security"
	"github.com/phrazzld/interview-prep-api/internal/service"
	"github.com/phrazzld/interview-prep-api/internal/session"
)

// application holds the composed dependency graph for the server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	service api.GenerationService
	history *session.History
}

// newApplication wires the full dependency graph: prompt library,
// Gemini client, rate limiter, invoker, parser, cost tracker, session
// history, and the orchestrating generation service.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := gemini.NewClient(ctx, logger, cfg.LLM.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	limiter := ratelimit.New(
		cfg.RateLimit.MaxCalls,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)

	invoker, err := generation.NewInvoker(client, limiter, logger)
	if err != nil {
		return nil, fmt.Errorf("creating invoker: %w", err)
	}

	history := session.NewHistory(cfg.Session.MaxHistory)
	if _, statErr := os.Stat(cfg.Session.ExportPath); statErr == nil {
		if loadErr := history.Load(cfg.Session.ExportPath); loadErr != nil {
			logger.Warn("could not restore session history", "error", loadErr)
		}
	}

	svc, err := service.NewGenerationService(
		prompt.NewLibrary(),
		security.NewValidator(logger),
		invoker,
		parser.New(logger),
		limiter,
		cost.NewTracker(nil),
		history,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("creating generation service: %w", err)
	}

	return &application{
		config:  cfg,
		logger:  logger,
		service: svc,
		history: history,
	}, nil
}

// cleanup persists state on shutdown.
func (app *application) cleanup() {
	if err := app.history.Export(app.config.Session.ExportPath); err != nil {
		if err != session.ErrEmptyHistory {
			app.logger.Error("failed to export session history", "error", err)
		}
		return
	}
	app.logger.Info("session history exported", "path", app.config.Session.ExportPath)
}
