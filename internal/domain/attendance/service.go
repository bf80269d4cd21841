package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the employee
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut closes today's record for the employee
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetDaily returns nil when the employee has no record for date
	GetDaily(ctx context.Context, employeeID string, date time.Time) (*AttendanceResponse, error)

	GetMonthly(ctx context.Context, filter MonthlyFilter) ([]AttendanceResponse, error)

	// ListForDate lists every employee's record for one day (approver view)
	ListForDate(ctx context.Context, filter DateFilter) (ListAttendanceResponse, error)
}
