package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/export"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
)

// genericErrorMessage is shown for errors without a specific mapping.
const genericErrorMessage = "An unexpected error occurred"

// errNoSession is returned when a handler runs without the session middleware.
var errNoSession = errors.New("no session in request context")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest

	// Nothing to show or export
	case errors.Is(err, viewer.ErrNoCards):
		return http.StatusNotFound

	// Provider errors, most specific first
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrStageTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrAuthentication),
		errors.Is(err, generation.ErrProvider):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	switch {
	case errors.Is(err, domain.ErrEmptyTopic):
		return "Topic cannot be empty"
	case errors.Is(err, domain.ErrTopicTooLong):
		return fmt.Sprintf("Topic must be at most %d characters", domain.MaxTopicLength)
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input"

	case errors.Is(err, export.ErrUnknownFormat):
		return "Unsupported export format"

	case errors.Is(err, viewer.ErrNoCards):
		return "No flashcards produced"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The topic was blocked by the model's safety filters"
	case errors.Is(err, generation.ErrStageTimeout):
		return "Flashcard generation timed out"
	case errors.Is(err, generation.ErrTransientFailure):
		return "The AI provider is temporarily unavailable, please try again"
	case errors.Is(err, generation.ErrAuthentication):
		return "The AI provider rejected the configured credentials"
	case errors.Is(err, generation.ErrProvider):
		return "Flashcard generation failed"

	default:
		return genericErrorMessage
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the sanitized response for err and logs the full,
// redacted error. fallback replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if message == genericErrorMessage && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if errors.Is(err, generation.ErrAuthentication) {
		// A rejected credential needs operator attention on every request.
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
