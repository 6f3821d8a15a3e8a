package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
)

// FlashcardHandler serves the stateless generation endpoint.
type FlashcardHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(generator generation.Generator, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		generator: generator,
		logger:    logger,
	}
}

// decodeTopic reads, validates and normalizes a GenerateRequest. It writes
// the error response itself and reports whether the caller should go on.
func decodeTopic(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return "", false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return "", false
	}

	topic, err := domain.NormalizeTopic(req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", false
	}
	return topic, true
}

// GenerateFlashcards handles POST /api/flashcards requests
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	topic, ok := decodeTopic(w, r)
	if !ok {
		return
	}

	result, err := h.generator.GenerateWithReport(r.Context(), topic)
	if err != nil {
		HandleAPIError(w, r, err, "Flashcard generation failed")
		return
	}

	log.Info("flashcards generated",
		"topic", topic,
		"cards", len(result.Cards),
		"skipped_blocks", result.SkippedBlocks)

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Topic:         topic,
		Cards:         flashcardsToResponse(result.Cards),
		Count:         len(result.Cards),
		SkippedBlocks: result.SkippedBlocks,
	})
}
