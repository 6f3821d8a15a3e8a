package api

import (
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
)

// GenerateRequest defines the payload for the flashcard generation endpoints.
// Length is checked by domain.NormalizeTopic after trimming.
type GenerateRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// FlashcardResponse is a single card.
type FlashcardResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateResponse is returned by the stateless generation endpoint.
type GenerateResponse struct {
	Topic         string              `json:"topic"`
	Cards         []FlashcardResponse `json:"cards"`
	Count         int                 `json:"count"`
	SkippedBlocks int                 `json:"skipped_blocks"`
}

// DeckResponse describes the session viewer.
type DeckResponse struct {
	Topic string `json:"topic,omitempty"`

	// Card is the card under the cursor, nil when the deck is empty
	Card *FlashcardResponse `json:"card"`

	// Position is the one-based card number, 0 when the deck is empty
	Position    int    `json:"position"`
	Total       int    `json:"total"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
	Notice      string `json:"notice,omitempty"`
}

func flashcardToResponse(card domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{Question: card.Question, Answer: card.Answer}
}

func flashcardsToResponse(cards []domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, len(cards))
	for i, card := range cards {
		out[i] = flashcardToResponse(card)
	}
	return out
}

func snapshotToResponse(topic string, s viewer.Snapshot, notice string) DeckResponse {
	resp := DeckResponse{
		Topic:  topic,
		Total:  s.Total,
		Notice: notice,
	}
	if s.HasCard() {
		card := flashcardToResponse(s.Card)
		resp.Card = &card
		resp.Position = s.Number()
		resp.HasPrevious = !s.AtStart()
		resp.HasNext = !s.AtEnd()
	}
	return resp
}
