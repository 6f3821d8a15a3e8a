package domain

import (
	"fmt"
	"strings"
)

// Flashcard is a single question/answer pair. Both sides are plain text.
// The struct is comparable, so two cards are equal when their fields are.
type Flashcard struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer"   yaml:"answer"`
}

// NewFlashcard creates a Flashcard from already-trimmed question and answer text.
// Returns an error wrapping ErrValidation if either side is blank.
func NewFlashcard(question, answer string) (Flashcard, error) {
	card := Flashcard{
		Question: question,
		Answer:   answer,
	}

	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}

	return card, nil
}

// Validate checks that both sides of the card carry text.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyQuestion)
	}

	if strings.TrimSpace(f.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAnswer)
	}

	return nil
}
