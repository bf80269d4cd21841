package report

import (
	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE SUMMARY
// ========================================

// AttendanceSummaryRequest covers one employee, or every employee when EmployeeID is empty.
type AttendanceSummaryRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *AttendanceSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	}

	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: ErrInvalidYear.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceSummary struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	// Calendar days in the month
	TotalDays int `json:"total_days"`

	// Distinct employees with a record in the month; set on organisation-wide summaries
	Employees int `json:"employees,omitempty"`

	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	HalfDay int `json:"half_day"`

	// Percentage of TotalDays marked present, two decimals. Organisation-wide the
	// denominator is TotalDays times Employees.
	AttendanceRate decimal.Decimal `json:"attendance_rate"`
}

// ========================================
// LEAVE SUMMARY
// ========================================

type LeaveSummary struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Total      int    `json:"total"`
	Pending    int    `json:"pending"`
	Approved   int    `json:"approved"`
	Rejected   int    `json:"rejected"`

	// Sum of inclusive day spans of approved requests
	TotalDays int `json:"total_days"`

	RecentRequests []leave.LeaveRequestResponse `json:"recent_requests"`
}

// ========================================
// UNPAID LEAVE
// ========================================

type UnpaidLeaveDays struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Days        int    `json:"days"`
}
