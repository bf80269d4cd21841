package leave

import (
	"time"

	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

var LeaveTypes = []string{
	string(LeaveTypeCasual),
	string(LeaveTypeSick),
	string(LeaveTypeAnnual),
	string(LeaveTypeUnpaid),
}

// MaxLeaveDays bounds the inclusive span of a single request.
const MaxLeaveDays = 366

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// Decision is the approver's verdict on a pending request.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	// Inclusive calendar days
	StartDate time.Time
	EndDate   time.Time

	Reason *string

	Status     LeaveRequestStatus
	ApprovedBy *string
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDays is the inclusive day span of the request.
func (r LeaveRequest) TotalDays() int {
	return utils.DaysInclusive(r.StartDate, r.EndDate)
}
