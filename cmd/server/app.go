package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/bootstrap"
	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/session"
)

// sessionSweepInterval is how often expired viewer sessions are dropped.
const sessionSweepInterval = time.Minute

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Flashcard generation
	generator generation.Generator

	// Per-browser viewer state
	sessions *session.Store
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration and logger that must be
// established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := bootstrap.NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		sessions:  session.NewStore(cfg.Session.TTL(), logger.With("component", "sessions")),
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go app.sessions.Run(sweepCtx, sessionSweepInterval)

	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed", "open_sessions", app.sessions.Len())
}
