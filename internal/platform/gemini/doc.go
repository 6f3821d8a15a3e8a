// Package gemini provides an implementation of the generation.LLM interface
// backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a
// generation.StageRequest into a Gemini GenerateContent call and the model's
// answer back into a generation.Completion, without exposing genai types to
// the rest of the application.
//
// Key components:
//
// 1. GeminiClient:
//   - Implements the generation.LLM interface
//   - Renders the stage role, goal and backstory as a system instruction
//   - Declares stage tools as Gemini function declarations
//
// 2. Tool Loop:
//   - Executes function calls requested by the model through generation.Tool
//   - Feeds the results back as function responses
//   - Stops offering tools once the configured call budget is spent
//
// 3. Error Handling:
//   - Retries transient errors with exponential backoff and jitter
//   - Maps API errors onto generation.ErrAuthentication, ErrTransientFailure
//     and ErrContentBlocked, all wrapped in generation.ErrProvider
//   - Logs errors through the redact package so API keys never reach logs
package gemini
