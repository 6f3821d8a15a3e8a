package viewer_test

import (
	"sync"
	"testing"

	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deck(n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			Question: "Q" + string(rune('1'+i)),
			Answer:   "A" + string(rune('1'+i)),
		}
	}
	return cards
}

func TestNewViewerIsEmpty(t *testing.T) {
	t.Parallel()

	v := viewer.New()

	assert.True(t, v.IsEmpty())
	card, ok := v.Current()
	assert.False(t, ok)
	assert.Equal(t, domain.Flashcard{}, card)

	index, total := v.Position()
	assert.Zero(t, index)
	assert.Zero(t, total)

	v.Next()
	v.Previous()
	assert.True(t, v.IsEmpty(), "navigation on an empty deck is a no-op")
}

func TestNextClampsAtEnd(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	require.NoError(t, v.Load(deck(3)))

	v.Next()
	v.Next()
	v.Next()

	index, total := v.Position()
	assert.Equal(t, 2, index)
	assert.Equal(t, 3, total)

	card, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, "Q3", card.Question)
}

func TestPreviousClampsAtStart(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	require.NoError(t, v.Load(deck(3)))

	v.Previous()

	index, _ := v.Position()
	assert.Equal(t, 0, index)

	v.Next()
	v.Previous()
	card, _ := v.Current()
	assert.Equal(t, "Q1", card.Question)
}

func TestLoadResetsCursor(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	require.NoError(t, v.Load(deck(3)))
	v.Next()
	v.Next()

	require.NoError(t, v.Load(deck(2)))

	index, total := v.Position()
	assert.Equal(t, 0, index)
	assert.Equal(t, 2, total)
}

func TestLoadEmptyDeck(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	require.NoError(t, v.Load(deck(2)))

	err := v.Load(nil)

	require.ErrorIs(t, err, viewer.ErrNoCards)
	assert.True(t, v.IsEmpty())
	_, ok := v.Current()
	assert.False(t, ok)
}

func TestLoadCopiesDeck(t *testing.T) {
	t.Parallel()

	cards := deck(2)
	v := viewer.New()
	require.NoError(t, v.Load(cards))

	cards[0].Question = "mutated"

	card, _ := v.Current()
	assert.Equal(t, "Q1", card.Question)

	out := v.Deck()
	out[1].Answer = "mutated"
	assert.Equal(t, deck(2), v.Deck())
}

func TestNavigationSequenceStaysInBounds(t *testing.T) {
	t.Parallel()

	moves := []bool{true, true, false, true, true, true, false, false, false, false, true}

	for n := 1; n <= 4; n++ {
		v := viewer.New()
		require.NoError(t, v.Load(deck(n)))

		for _, forward := range moves {
			if forward {
				v.Next()
			} else {
				v.Previous()
			}
			index, total := v.Position()
			assert.GreaterOrEqual(t, index, 0)
			assert.Less(t, index, total)
		}
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	s := v.Snapshot()
	assert.False(t, s.HasCard())
	assert.True(t, s.AtEnd())

	require.NoError(t, v.Load(deck(2)))
	s = v.Snapshot()
	assert.True(t, s.HasCard())
	assert.Equal(t, 1, s.Number())
	assert.True(t, s.AtStart())
	assert.False(t, s.AtEnd())

	v.Next()
	s = v.Snapshot()
	assert.Equal(t, "Q2", s.Card.Question)
	assert.Equal(t, 2, s.Number())
	assert.True(t, s.AtEnd())
}

func TestConcurrentNavigation(t *testing.T) {
	t.Parallel()

	v := viewer.New()
	require.NoError(t, v.Load(deck(4)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); v.Next() }()
		go func() { defer wg.Done(); v.Previous() }()
	}
	wg.Wait()

	index, total := v.Position()
	assert.GreaterOrEqual(t, index, 0)
	assert.Less(t, index, total)
}
