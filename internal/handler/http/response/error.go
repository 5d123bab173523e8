package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/auth"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/device"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Settings domain errors
	case errors.Is(err, settings.ErrOverlappingPeriods):
		ValidationError(w, map[string]string{"periods": err.Error()})

	// Device and sync errors
	case errors.Is(err, attendance.ErrSyncInProgress):
		Conflict(w, "A device operation is already in progress")
	case errors.Is(err, device.ErrDeviceUnavailable):
		ServiceUnavailable(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrFingerIDExists):
		Conflict(w, "Finger ID already registered")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidFormat),
		errors.Is(err, report.ErrInvalidScope),
		errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
