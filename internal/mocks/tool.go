package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-flashcards/internal/generation"
)

// MockTool implements generation.Tool for testing
type MockTool struct {
	ToolName        string
	ToolDescription string

	// CallFn allows test cases to mock the Call behavior
	CallFn func(ctx context.Context, input string) string

	// Output is returned when CallFn is nil
	Output string

	// Call tracking for verification
	Calls struct {
		mu     sync.Mutex
		Count  int
		Inputs []string
	}
}

var _ generation.Tool = (*MockTool)(nil)

// Name implements the generation.Tool interface
func (m *MockTool) Name() string {
	if m.ToolName == "" {
		return generation.SearchToolName
	}
	return m.ToolName
}

// Description implements the generation.Tool interface
func (m *MockTool) Description() string { return m.ToolDescription }

// Call implements the generation.Tool interface
func (m *MockTool) Call(ctx context.Context, input string) string {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.Inputs = append(m.Calls.Inputs, input)
	m.Calls.mu.Unlock()

	if m.CallFn != nil {
		return m.CallFn(ctx, input)
	}
	return m.Output
}

// Inputs returns a copy of the recorded inputs.
func (m *MockTool) Inputs() []string {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return append([]string(nil), m.Calls.Inputs...)
}
