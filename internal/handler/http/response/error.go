package response

import (
	"errors"
	"net/http"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/jobs"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Timekeeping domain errors
	switch {
	case errors.Is(err, timekeeping.ErrInvalidPunchRange):
		BadRequest(w, "Punch time out must be after time in", nil)
	case errors.Is(err, timekeeping.ErrPunchTooLong):
		BadRequest(w, "Punch exceeds the maximum session length", nil)
	case errors.Is(err, timekeeping.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, timekeeping.ErrDailyNotFound):
		NotFound(w, "Daily timekeeping record not found")
	case errors.Is(err, timekeeping.ErrOverrideNotFound):
		NotFound(w, "Override not found")
	case errors.Is(err, timekeeping.ErrAccountRequired):
		BadRequest(w, "Account ID is required", nil)
	case errors.Is(err, timekeeping.ErrInvalidDate):
		BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
	case errors.Is(err, timekeeping.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Cutoff domain errors
	case errors.Is(err, cutoff.ErrCutoffNotFound):
		NotFound(w, "Cutoff not found")
	case errors.Is(err, cutoff.ErrDateRangeNotFound):
		NotFound(w, "Cutoff date range not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Background job errors
	case errors.Is(err, jobs.ErrJobNotFound):
		NotFound(w, "Job not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
