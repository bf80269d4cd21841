package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half_day"
)

// Attendance is the single record for one employee on one calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // calendar day, midnight UTC
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status

	// Set when the record was written by an approved leave.
	LeaveRequestID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkedDuration is ClockOut - ClockIn, or zero while the day is still open.
func (a Attendance) WorkedDuration() time.Duration {
	if a.ClockIn == nil || a.ClockOut == nil {
		return 0
	}
	return a.ClockOut.Sub(*a.ClockIn)
}
