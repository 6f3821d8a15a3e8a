package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-flashcards/internal/generation"
)

// MockSearcher implements generation.Searcher for testing
type MockSearcher struct {
	// SearchFn allows test cases to mock the Search behavior
	SearchFn func(ctx context.Context, query string) ([]generation.SearchResult, error)

	// Default response values
	Results []generation.SearchResult
	Err     error

	// Call tracking for verification
	SearchCalls struct {
		mu      sync.Mutex
		Count   int
		Queries []string
	}
}

var _ generation.Searcher = (*MockSearcher)(nil)

// Search implements the generation.Searcher interface
func (m *MockSearcher) Search(ctx context.Context, query string) ([]generation.SearchResult, error) {
	m.SearchCalls.mu.Lock()
	m.SearchCalls.Count++
	m.SearchCalls.Queries = append(m.SearchCalls.Queries, query)
	m.SearchCalls.mu.Unlock()

	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}

	return m.Results, m.Err
}

// Queries returns a copy of the recorded queries.
func (m *MockSearcher) Queries() []string {
	m.SearchCalls.mu.Lock()
	defer m.SearchCalls.mu.Unlock()
	return append([]string(nil), m.SearchCalls.Queries...)
}
