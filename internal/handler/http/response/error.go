package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
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
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		BadRequest(w, "No check-in found for today", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "End date cannot be before start date", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "You have overlapping leave requests")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotFound):
		NotFound(w, "Leave request not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
