package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateWithReportFn allows test cases to mock generation behavior.
	// Generate delegates to it as well.
	GenerateWithReportFn func(ctx context.Context, topic string) (generation.Result, error)

	// Default response values
	Cards         []domain.Flashcard
	SkippedBlocks int
	Err           error

	// Call tracking for verification
	GenerateCalls struct {
		mu       sync.Mutex
		Count    int
		Topics   []string
		Contexts []context.Context
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, topic string) ([]domain.Flashcard, error) {
	result, err := m.GenerateWithReport(ctx, topic)
	if err != nil {
		return nil, err
	}
	return result.Cards, nil
}

// GenerateWithReport implements the generation.Generator interface
func (m *MockGenerator) GenerateWithReport(ctx context.Context, topic string) (generation.Result, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Topics = append(m.GenerateCalls.Topics, topic)
	m.GenerateCalls.Contexts = append(m.GenerateCalls.Contexts, ctx)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateWithReportFn != nil {
		return m.GenerateWithReportFn(ctx, topic)
	}

	if m.Err != nil {
		return generation.Result{}, m.Err
	}

	cards := m.Cards
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	return generation.Result{Cards: cards, SkippedBlocks: m.SkippedBlocks}, nil
}

// CallCount returns how many times the generator was invoked.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastTopic returns the topic of the most recent call, or "".
func (m *MockGenerator) LastTopic() string {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Topics) == 0 {
		return ""
	}
	return m.GenerateCalls.Topics[len(m.GenerateCalls.Topics)-1]
}

// NewMockGeneratorWithCards creates a MockGenerator that returns the specified cards
func NewMockGeneratorWithCards(cards ...domain.Flashcard) *MockGenerator {
	return &MockGenerator{Cards: cards}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
