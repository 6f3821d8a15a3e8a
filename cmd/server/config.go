package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-flashcards/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log basic configuration details after successful loading
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"pipeline_mode", cfg.Pipeline.Mode,
		"card_count", cfg.Pipeline.CardCount)

	slog.Debug("Provider configuration",
		"model", cfg.LLM.ModelName,
		"gemini_key_present", cfg.LLM.GeminiAPIKey != "",
		"serper_key_present", cfg.Search.SerperAPIKey != "")

	return cfg, nil
}
