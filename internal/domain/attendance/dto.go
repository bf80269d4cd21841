package attendance

import (
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	ClockInTime    *string  `json:"clock_in_time,omitempty"`
	ClockOutTime   *string  `json:"clock_out_time,omitempty"`
	WorkingHours   *float64 `json:"working_hours,omitempty"`
	Status         string   `json:"status"`
	LeaveRequestID *string  `json:"leave_request_id,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type MonthlyFilter struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (f *MonthlyFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Year < 1970 || f.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DateFilter struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *DateFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page > validator.MaxPage {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not exceed 100000",
		})
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToResponse maps an Attendance entity to its API shape.
func ToResponse(att Attendance) AttendanceResponse {
	var workingHours *float64
	if att.ClockIn != nil && att.ClockOut != nil {
		hours := att.WorkedDuration().Hours()
		workingHours = &hours
	}

	return AttendanceResponse{
		ID:             att.ID,
		EmployeeID:     att.EmployeeID,
		Date:           utils.FormatDate(att.Date),
		ClockInTime:    timePtrToString(att.ClockIn),
		ClockOutTime:   timePtrToString(att.ClockOut),
		WorkingHours:   workingHours,
		Status:         string(att.Status),
		LeaveRequestID: att.LeaveRequestID,
		CreatedAt:      att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      att.UpdatedAt.Format(time.RFC3339),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
