package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/retry"
	"google.golang.org/genai"
)

// classifyError maps an error from the Gemini SDK onto the generation error
// taxonomy. The result always wraps generation.ErrProvider.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: request cancelled: %w", generation.ErrProvider, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrTransientFailure, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr, err)
	}

	if isAuthMessage(err.Error()) {
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrAuthentication, err)
	}

	if retry.IsRetryable(err) {
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrTransientFailure, err)
	}

	return fmt.Errorf("%w: %w", generation.ErrProvider, err)
}

func classifyAPIError(apiErr genai.APIError, err error) error {
	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrAuthentication, err)
	case apiErr.Code == http.StatusBadRequest && isAuthMessage(apiErr.Message):
		// Gemini reports a malformed key as 400 INVALID_ARGUMENT.
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrAuthentication, err)
	case apiErr.Code == http.StatusTooManyRequests,
		apiErr.Code == http.StatusRequestTimeout,
		apiErr.Code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: %w", generation.ErrProvider, generation.ErrTransientFailure, err)
	default:
		return fmt.Errorf("%w: %w", generation.ErrProvider, err)
	}
}

func isAuthMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "api key not valid") ||
		strings.Contains(msg, "api_key_invalid") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "unauthenticated")
}

// isTransient is the retry classifier for classified errors.
func isTransient(err error) bool {
	return errors.Is(err, generation.ErrTransientFailure)
}
