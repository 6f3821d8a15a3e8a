// Package viewer implements the deck viewer: a cursor over a deck of
// flashcards that moves one card at a time and clamps at both ends.
package viewer

import (
	"errors"
	"sync"

	"github.com/phrazzld/scry-flashcards/internal/domain"
)

// ErrNoCards is returned by Load when the new deck is empty.
var ErrNoCards = errors.New("no flashcards produced")

// Viewer holds one deck and a cursor into it. The zero value is an empty
// viewer ready to use. Methods are safe for concurrent use.
type Viewer struct {
	mu     sync.RWMutex
	deck   []domain.Flashcard
	cursor int
}

// New returns an empty Viewer.
func New() *Viewer {
	return &Viewer{}
}

// Load replaces the deck wholesale and resets the cursor to the first card.
// An empty deck still replaces the current one, leaving the viewer in its
// empty state, and Load reports ErrNoCards so the caller can tell the user.
func (v *Viewer) Load(deck []domain.Flashcard) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.deck = append([]domain.Flashcard(nil), deck...)
	v.cursor = 0

	if len(v.deck) == 0 {
		return ErrNoCards
	}
	return nil
}

// Next advances to the next card. It is a no-op on the last card.
func (v *Viewer) Next() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cursor < len(v.deck)-1 {
		v.cursor++
	}
}

// Previous moves back one card. It is a no-op on the first card.
func (v *Viewer) Previous() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cursor > 0 {
		v.cursor--
	}
}

// Current returns the card under the cursor. When the deck is empty it
// returns the zero Flashcard and false.
func (v *Viewer) Current() (domain.Flashcard, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.deck) == 0 {
		return domain.Flashcard{}, false
	}
	return v.deck[v.cursor], true
}

// Position returns the zero-based cursor and the deck size.
func (v *Viewer) Position() (index, total int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.cursor, len(v.deck)
}

// IsEmpty reports whether the viewer has no cards.
func (v *Viewer) IsEmpty() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.deck) == 0
}

// Deck returns a copy of the loaded deck.
func (v *Viewer) Deck() []domain.Flashcard {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]domain.Flashcard{}, v.deck...)
}

// Snapshot is a consistent view of the viewer for rendering.
type Snapshot struct {
	Card  domain.Flashcard
	Index int
	Total int
}

// HasCard reports whether the snapshot carries a card.
func (s Snapshot) HasCard() bool { return s.Total > 0 }

// Number is the one-based card number for display.
func (s Snapshot) Number() int { return s.Index + 1 }

// AtStart reports whether the cursor is on the first card.
func (s Snapshot) AtStart() bool { return s.Index == 0 }

// AtEnd reports whether the cursor is on the last card.
func (s Snapshot) AtEnd() bool { return s.Total == 0 || s.Index == s.Total-1 }

// Snapshot returns the current card and position under a single lock.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := Snapshot{Index: v.cursor, Total: len(v.deck)}
	if len(v.deck) > 0 {
		s.Card = v.deck[v.cursor]
	}
	return s
}
