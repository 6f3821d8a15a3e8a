package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/redact"
)

// Pipeline implements Generator by running the configured stages in order.
// A Pipeline holds no per-run state and is safe for concurrent use as long
// as its LLM and Tool are.
type Pipeline struct {
	llm          LLM
	search       Tool
	logger       *slog.Logger
	mode         string
	cardCount    int
	stageTimeout time.Duration
}

var _ Generator = (*Pipeline)(nil)

// NewPipeline creates a Pipeline.
//
// Parameters:
//   - cfg: mode, card count and per-stage timeout
//   - llm: the language model provider used by every stage
//   - search: the web-search tool, required in full mode and ignored in single mode
//   - logger: structured logger for stage progress
//
// Returns an error wrapping ErrInvalidConfig if a dependency is missing.
func NewPipeline(cfg config.PipelineConfig, llm LLM, search Tool, logger *slog.Logger) (*Pipeline, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: llm cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	switch cfg.Mode {
	case config.ModeFull:
		if search == nil {
			return nil, fmt.Errorf("%w: full mode requires a search tool", ErrInvalidConfig)
		}
	case config.ModeSingle:
	default:
		return nil, fmt.Errorf("%w: unknown pipeline mode %q", ErrInvalidConfig, cfg.Mode)
	}

	if cfg.CardCount < 1 {
		return nil, fmt.Errorf("%w: card count must be positive", ErrInvalidConfig)
	}

	return &Pipeline{
		llm:          llm,
		search:       search,
		logger:       logger,
		mode:         cfg.Mode,
		cardCount:    cfg.CardCount,
		stageTimeout: cfg.StageTimeout(),
	}, nil
}

// Mode returns the configured pipeline mode.
func (p *Pipeline) Mode() string { return p.mode }

// Generate implements Generator.
func (p *Pipeline) Generate(ctx context.Context, topic string) ([]domain.Flashcard, error) {
	result, err := p.GenerateWithReport(ctx, topic)
	if err != nil {
		return nil, err
	}
	return result.Cards, nil
}

// GenerateWithReport implements Generator.
func (p *Pipeline) GenerateWithReport(ctx context.Context, topic string) (Result, error) {
	topic, err := domain.NormalizeTopic(topic)
	if err != nil {
		return Result{}, err
	}

	log := logger.FromContextOrDefault(ctx, p.logger).With(
		"topic", topic,
		"mode", p.mode,
		"card_count", p.cardCount,
	)
	start := time.Now()
	log.InfoContext(ctx, "starting flashcard generation")

	var final Completion
	if p.mode == config.ModeSingle {
		final, err = p.runSingle(ctx, log, topic)
	} else {
		final, err = p.runFull(ctx, log, topic)
	}
	if err != nil {
		log.ErrorContext(ctx, "flashcard generation failed",
			"error", redact.Error(err),
			"duration_ms", time.Since(start).Milliseconds())
		return Result{}, err
	}

	result := ParseFlashcards(final.Payload)
	if result.NonText {
		log.WarnContext(ctx, "final stage returned a non-text payload",
			"payload_type", fmt.Sprintf("%T", final.Payload))
	}
	if result.SkippedBlocks > 0 {
		log.WarnContext(ctx, "skipped malformed flashcard blocks",
			"skipped_blocks", result.SkippedBlocks)
	}

	log.InfoContext(ctx, "flashcard generation completed",
		"cards", len(result.Cards),
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

func (p *Pipeline) runSingle(ctx context.Context, log *slog.Logger, topic string) (Completion, error) {
	spec, err := SingleStage(topic, p.cardCount)
	if err != nil {
		return Completion{}, err
	}
	return p.runStage(ctx, log, spec)
}

func (p *Pipeline) runFull(ctx context.Context, log *slog.Logger, topic string) (Completion, error) {
	planning, err := PlanningStage(topic)
	if err != nil {
		return Completion{}, err
	}
	plan, err := p.runStage(ctx, log, planning)
	if err != nil {
		return Completion{}, err
	}

	search, err := SearchStage(topic, p.intermediateText(ctx, log, planning.Name, plan))
	if err != nil {
		return Completion{}, err
	}
	research, err := p.runStage(ctx, log, search)
	if err != nil {
		return Completion{}, err
	}

	authoring, err := AuthoringStage(topic, p.intermediateText(ctx, log, search.Name, research), p.cardCount)
	if err != nil {
		return Completion{}, err
	}
	return p.runStage(ctx, log, authoring)
}

// intermediateText returns the textual output of a stage that feeds the next
// one. Non-text output is dropped and the next stage falls back to its
// empty-input instructions.
func (p *Pipeline) intermediateText(ctx context.Context, log *slog.Logger, stage string, c Completion) string {
	text, ok := c.Text()
	if !ok {
		log.WarnContext(ctx, "stage returned a non-text payload",
			"stage", stage,
			"payload_type", fmt.Sprintf("%T", c.Payload))
		return ""
	}
	return text
}

func (p *Pipeline) runStage(ctx context.Context, log *slog.Logger, spec StageSpec) (Completion, error) {
	stageCtx := ctx
	if p.stageTimeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, p.stageTimeout)
		defer cancel()
	}

	var req StageRequest
	if spec.Capability == CapabilityWebSearch {
		req = spec.Request(p.search)
	} else {
		req = spec.Request()
	}

	start := time.Now()
	log.DebugContext(ctx, "running stage",
		"stage", spec.Name,
		"capability", spec.Capability.String(),
		"tools", len(req.Tools))

	completion, err := p.llm.Run(stageCtx, req)
	if err != nil {
		if ctx.Err() == nil && errors.Is(stageCtx.Err(), context.DeadlineExceeded) {
			return Completion{}, fmt.Errorf("%w: %w: %s stage exceeded %s: %w",
				ErrProvider, ErrStageTimeout, spec.Name, p.stageTimeout, err)
		}
		if !errors.Is(err, ErrProvider) {
			err = fmt.Errorf("%w: %w", ErrProvider, err)
		}
		return Completion{}, fmt.Errorf("%s stage: %w", spec.Name, err)
	}

	log.DebugContext(ctx, "stage completed",
		"stage", spec.Name,
		"duration_ms", time.Since(start).Milliseconds())

	return completion, nil
}
