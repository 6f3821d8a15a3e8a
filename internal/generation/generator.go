package generation

import (
	"context"

	"github.com/phrazzld/scry-flashcards/internal/domain"
)

// Generator defines the interface for generating flashcards from a topic.
// This interface serves as a boundary between the front ends and the
// external AI/LLM services.
type Generator interface {
	// Generate returns the flashcards produced for topic. An empty slice is a
	// valid result; errors wrap ErrProvider or a domain validation error.
	Generate(ctx context.Context, topic string) ([]domain.Flashcard, error)

	// GenerateWithReport is Generate plus parse diagnostics.
	GenerateWithReport(ctx context.Context, topic string) (Result, error)
}

// Result is the outcome of one generation run.
type Result struct {
	// Cards holds the parsed flashcards in model output order. Never nil.
	Cards []domain.Flashcard `json:"cards"`

	// SkippedBlocks counts non-blank blocks that could not become a card.
	SkippedBlocks int `json:"skipped_blocks"`

	// NonText is true when the final stage returned a payload that was not text.
	NonText bool `json:"non_text,omitempty"`
}
