package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/session"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
)

// noCardsNotice is shown when generation succeeded but produced no cards.
const noCardsNotice = "No flashcards were produced for %q. Try rephrasing the topic."

// loadDeck generates a deck for topic and loads it into the session viewer.
// On error the session's current deck is left untouched. An empty result
// still replaces the deck and leaves a notice for the next render.
func loadDeck(
	ctx context.Context,
	log *slog.Logger,
	gen generation.Generator,
	sess *session.Session,
	topic string,
) (generation.Result, error) {
	result, err := gen.GenerateWithReport(ctx, topic)
	if err != nil {
		return generation.Result{}, err
	}

	loadErr := sess.LoadDeck(topic, result.Cards)

	switch {
	case errors.Is(loadErr, viewer.ErrNoCards):
		log.InfoContext(ctx, "generation produced no flashcards",
			"session_id", sess.ID.String(),
			"skipped_blocks", result.SkippedBlocks)
		sess.SetNotice(fmt.Sprintf(noCardsNotice, topic))
	case loadErr != nil:
		return generation.Result{}, loadErr
	default:
		log.InfoContext(ctx, "deck loaded",
			"session_id", sess.ID.String(),
			"cards", len(result.Cards),
			"skipped_blocks", result.SkippedBlocks)
	}

	return result, nil
}
