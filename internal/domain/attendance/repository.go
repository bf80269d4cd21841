package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is keyed by (employeeID, date). Every write is atomic with
// respect to that key.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// UpsertCheckIn inserts a present record with clockIn, or fills clockIn on an
	// existing record that has none. Returns ErrAlreadyCheckedIn otherwise.
	UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (Attendance, error)

	// MarkCheckOut sets clockOut on a checked-in, still open record.
	// Returns ErrNoCheckInFound or ErrAlreadyCheckedOut when the transition is not allowed.
	MarkCheckOut(ctx context.Context, employeeID string, date time.Time, clockOut time.Time) (Attendance, error)

	// UpsertStatus creates the record or overwrites its status.
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status Status, leaveRequestID *string) (Attendance, error)

	// ListByEmployeeAndRange returns records with date in [start, end], newest first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListByRange returns every employee's records with date in [start, end], newest first.
	ListByRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	// ListByDate returns one page of records for a date across employees, newest created first.
	ListByDate(ctx context.Context, date time.Time, page, limit int) ([]Attendance, int64, error)
}
