package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Overtime domain errors: user-facing validation failures keep their
	// message; anything else is an unexpected failure and stays generic.
	switch {
	case errors.Is(err, overtime.ErrNoValidData),
		errors.Is(err, overtime.ErrNoDataLoaded),
		errors.Is(err, overtime.ErrNoFileProvided),
		errors.Is(err, overtime.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
