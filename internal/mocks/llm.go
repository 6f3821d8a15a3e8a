package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/scry-flashcards/internal/generation"
)

// MockLLM implements generation.LLM for testing
type MockLLM struct {
	// RunFn allows test cases to mock the Run behavior
	RunFn func(ctx context.Context, req generation.StageRequest) (generation.Completion, error)

	// ResponsesByStage maps a stage name to the completion returned for it.
	// Stages missing from the map return an empty text completion.
	ResponsesByStage map[string]generation.Completion

	// ErrByStage maps a stage name to the error returned for it.
	ErrByStage map[string]error

	// Call tracking for verification
	RunCalls struct {
		mu       sync.Mutex
		Count    int
		Requests []generation.StageRequest
	}
}

var _ generation.LLM = (*MockLLM)(nil)

// Run implements the generation.LLM interface
func (m *MockLLM) Run(ctx context.Context, req generation.StageRequest) (generation.Completion, error) {
	m.RunCalls.mu.Lock()
	m.RunCalls.Count++
	m.RunCalls.Requests = append(m.RunCalls.Requests, req)
	m.RunCalls.mu.Unlock()

	if m.RunFn != nil {
		return m.RunFn(ctx, req)
	}

	if err, ok := m.ErrByStage[req.Stage]; ok {
		return generation.Completion{}, err
	}

	if c, ok := m.ResponsesByStage[req.Stage]; ok {
		return c, nil
	}

	return generation.TextCompletion(""), nil
}

// Requests returns a copy of the recorded requests.
func (m *MockLLM) Requests() []generation.StageRequest {
	m.RunCalls.mu.Lock()
	defer m.RunCalls.mu.Unlock()
	return append([]generation.StageRequest(nil), m.RunCalls.Requests...)
}

// Stages returns the stage names in call order.
func (m *MockLLM) Stages() []string {
	reqs := m.Requests()
	stages := make([]string, len(reqs))
	for i, r := range reqs {
		stages[i] = r.Stage
	}
	return stages
}

// Request returns the recorded request for stage or fails with an error.
func (m *MockLLM) Request(stage string) (generation.StageRequest, error) {
	for _, r := range m.Requests() {
		if r.Stage == stage {
			return r, nil
		}
	}
	return generation.StageRequest{}, fmt.Errorf("no request recorded for stage %q", stage)
}
