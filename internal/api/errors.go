package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	// Store unavailable and anything unexpected
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return SanitizeValidationError(validationErr)

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError renders a validation failure as
// "Invalid <field>: <reason>".
func SanitizeValidationError(err *domain.ValidationError) string {
	if err.Field == "" {
		return "Validation error"
	}
	if err.Message == "" {
		return fmt.Sprintf("Invalid %s", err.Field)
	}
	return fmt.Sprintf("Invalid %s: %s", err.Field, err.Message)
}

// HandleAPIError writes the error response for err. serverMessage replaces
// the generic text for 5xx responses so clients learn which operation failed
// without seeing why.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, serverMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && serverMessage != "" {
		message = serverMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
