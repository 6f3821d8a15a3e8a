package generation

import "context"

// LLM runs a single stage request against a language model. Implementations
// handle tool calling internally: when the request carries Tools the model
// may invoke them any number of times before producing its final answer.
type LLM interface {
	Run(ctx context.Context, req StageRequest) (Completion, error)
}

// StageRequest is everything a provider needs to execute one stage.
type StageRequest struct {
	Stage          string
	Role           string
	Goal           string
	Backstory      string
	Task           string
	ExpectedOutput string
	Tools          []Tool
}

// Completion wraps the final output of a stage. Payload is normally a string
// but providers may return structured content when the model produced no text.
type Completion struct {
	Payload any
}

// TextCompletion returns a Completion holding s.
func TextCompletion(s string) Completion {
	return Completion{Payload: s}
}

// Text returns the payload as a string and whether it was one.
func (c Completion) Text() (string, bool) {
	s, ok := c.Payload.(string)
	return s, ok
}

// Tool is a callable capability exposed to the model during a stage.
type Tool interface {
	// Name is the identifier the model uses to invoke the tool.
	Name() string
	// Description tells the model when to use the tool.
	Description() string
	// Call runs the tool. Failures are reported in the returned text so the
	// model can carry on.
	Call(ctx context.Context, input string) string
}
