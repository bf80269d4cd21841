package report

import (
	"context"
	"time"
)

// ReportService aggregates attendance and leave records. It never writes.
type ReportService interface {
	// AttendanceSummary counts attendance statuses for one month, for one employee or
	// for every employee when req.EmployeeID is empty.
	AttendanceSummary(ctx context.Context, req AttendanceSummaryRequest) (AttendanceSummary, error)

	// LeaveSummary counts leave requests by status and lists the most recent ones.
	// An empty employeeID covers every employee.
	LeaveSummary(ctx context.Context, employeeID string) (LeaveSummary, error)

	// UnpaidLeaveDaysInPeriod sums the days of approved unpaid leave that fall inside [periodStart, periodEnd].
	UnpaidLeaveDaysInPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (UnpaidLeaveDays, error)
}
