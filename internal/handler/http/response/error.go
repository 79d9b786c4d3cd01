package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/profitpulse/profitpulse-api/internal/domain/auth"
	"github.com/profitpulse/profitpulse-api/internal/domain/profitability"
	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, rbac.ErrPrincipalMissing):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInactiveUser):
		Forbidden(w, "User account is inactive")

	// RBAC domain errors
	case errors.Is(err, rbac.ErrPermissionDenied):
		Forbidden(w, "You do not have permission to access this resource")
	case errors.Is(err, rbac.ErrInvalidRBACOverrides):
		ValidationError(w, map[string]string{settings.KeyRBACOverrides: err.Error()})

	// Settings domain errors
	case errors.Is(err, settings.ErrConfigurationMissing), errors.Is(err, settings.ErrConfigurationInvalid):
		slog.Error("Financial configuration error", "error", err)
		ConfigurationError(w, err.Error())

	// Profitability domain errors
	case errors.Is(err, profitability.ErrUpstreamData), errors.Is(err, profitability.ErrInvalidTimesheet):
		slog.Error("Upstream data error", "error", err)
		UpstreamDataError(w, "Source data could not be read")
	case errors.Is(err, profitability.ErrUnknownDimension):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
