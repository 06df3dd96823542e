package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/promptlab/internal/api/shared"
	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
	"github.com/phrazzld/promptlab/internal/redact"
)

// User-facing messages.
const (
	MsgPromptRequired      = "Prompt required"
	MsgInvalidRequest      = "Invalid request format"
	MsgInvalidAnalyzeInput = "Invalid request type or missing parameters."
	MsgInvalidImage        = "Invalid image data"
	MsgBodyTooLarge        = "Request body too large"
	MsgNoImageReturned     = "No image returned by Gemini"
	MsgImageUnavailable    = "Gemini API key not configured"
	MsgGenerateFailed      = "Failed to generate image"
	MsgAnalyzeFailed       = "Failed to analyze image"
	MsgUnexpected          = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case shared.IsBodyTooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrInvalidImage),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrNoProviderAvailable),
		errors.Is(err, generation.ErrImageProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
//
// Exhausted enhancement fallback is reported with its own message, naming
// the last provider and its error, after redaction. Other internal errors
// collapse to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case shared.IsBodyTooLarge(err):
		return MsgBodyTooLarge
	case errors.Is(err, domain.ErrEmptyPrompt):
		return MsgPromptRequired
	case errors.Is(err, domain.ErrInvalidImage):
		return MsgInvalidImage
	case errors.Is(err, generation.ErrNoProviderAvailable):
		return generation.ErrNoProviderAvailable.Error()
	case errors.Is(err, generation.ErrImageProviderUnavailable):
		return MsgImageUnavailable
	case errors.Is(err, generation.ErrAllProvidersFailed):
		return redact.Error(err)
	case errors.Is(err, generation.ErrNoImageReturned):
		return MsgNoImageReturned
	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the error response for err. When err maps to a
// generic 500, defaultMsg (if non-empty) replaces the generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == MsgUnexpected && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
