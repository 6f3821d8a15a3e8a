// Package bootstrap assembles the flashcard generator from configuration.
// The server and the CLI share it so both run the same pipeline.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/platform/gemini"
	"github.com/phrazzld/scry-flashcards/internal/platform/serper"
)

// NewGenerator builds the Gemini client and hands it to BuildGenerator.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
	llm, err := gemini.NewGeminiClient(ctx, logger.With("component", "llm"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	logger.Info("LLM client initialized", "model", cfg.LLM.ModelName)

	return BuildGenerator(cfg, llm, logger)
}

// BuildGenerator assembles the pipeline around llm. The Serper search tool is
// only built in full mode.
func BuildGenerator(cfg *config.Config, llm generation.LLM, logger *slog.Logger) (*generation.Pipeline, error) {
	var search generation.Tool
	if cfg.Pipeline.Mode == config.ModeFull {
		searcher, err := serper.NewClient(cfg.Search, logger.With("component", "search"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize search client: %w", err)
		}

		tool, err := generation.NewSearchTool(searcher, cfg.Search.ResultCount, logger.With("component", "search_tool"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize search tool: %w", err)
		}
		search = tool
	}

	pipeline, err := generation.NewPipeline(cfg.Pipeline, llm, search, logger.With("component", "pipeline"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation pipeline: %w", err)
	}

	logger.Info("generation pipeline initialized",
		"mode", pipeline.Mode(),
		"card_count", cfg.Pipeline.CardCount,
		"stage_timeout", cfg.Pipeline.StageTimeout().String())

	return pipeline, nil
}
