package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the pipeline or a provider is misconfigured
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrProvider is the umbrella error for any failure talking to an LLM or
	// search provider. Every error returned from Generate wraps it, except
	// input validation errors.
	ErrProvider = errors.New("provider error")

	// ErrAuthentication is returned when a provider rejects the credentials
	ErrAuthentication = errors.New("provider rejected credentials")

	// ErrTransientFailure is returned for temporary errors that outlasted the retry budget
	ErrTransientFailure = errors.New("transient provider failure")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrStageTimeout is returned when a single stage exceeds its deadline
	ErrStageTimeout = errors.New("stage timed out")

	// ErrInvalidResponse is returned when a provider answers with something unusable
	ErrInvalidResponse = errors.New("invalid response from provider")
)
