// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for custom behavior, default response
// values and mutex-guarded call tracking, so the same mock can be shared by
// the generation, api and cmd tests.
//
// Usage:
//
//	llm := &mocks.MockLLM{
//	    ResponsesByStage: map[string]generation.Completion{
//	        generation.StageAuthoring: generation.TextCompletion("Q: q\nA: a"),
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
