package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate is GetByID that also locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// LockEmployee serializes overlap-check-then-insert sequences for one employee
	// until the surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// HasOverlap reports whether a pending or approved request of the employee intersects [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]LeaveRequest, int64, error)
	ListByStatus(ctx context.Context, status LeaveRequestStatus, page, limit int) ([]LeaveRequest, int64, error)
	List(ctx context.Context, page, limit int) ([]LeaveRequest, int64, error)

	// ListAll returns every request across employees, newest created first.
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// ListAllByEmployee returns every request of the employee, unpaginated.
	ListAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListApprovedByTypeInRange returns approved requests of leaveType intersecting [start, end].
	ListApprovedByTypeInRange(ctx context.Context, employeeID string, leaveType LeaveType, start, end time.Time) ([]LeaveRequest, error)

	// UpdateDecision moves a pending request to status. Returns ErrAlreadyDecided when
	// the stored row is no longer pending.
	UpdateDecision(ctx context.Context, id string, status LeaveRequestStatus, approvedBy *string, decidedAt time.Time) (LeaveRequest, error)
}
