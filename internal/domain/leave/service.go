package leave

import (
	"context"
)

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Decide approves or rejects a pending request. Approval writes a leave attendance
	// record for every day of the range in the same transaction.
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)

	GetForEmployee(ctx context.Context, employeeID string, filter PageFilter) (ListLeaveRequestResponse, error)
	GetPending(ctx context.Context, filter PageFilter) (ListLeaveRequestResponse, error)
	GetHistory(ctx context.Context, filter PageFilter) (ListLeaveRequestResponse, error)
	GetByID(ctx context.Context, leaveID string) (LeaveRequestResponse, error)
}
