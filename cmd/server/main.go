// Package main implements the entry point for the Scry Flashcards server,
// which turns a topic into a deck of question/answer flashcards through a
// chain of language-model stages and serves them in a flip-card viewer.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for the scry-flashcards server.
// It initializes configuration and logging, wires the generation pipeline
// and starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("scry-flashcards: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the application and blocks until the
// server stops.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("Scry Flashcards server starting",
		"port", cfg.Server.Port,
		"mode", cfg.Pipeline.Mode)

	return app.Run(ctx)
}
