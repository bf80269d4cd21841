package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.store.write(ctx, func() error {
		if request.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return database.StoreError("failed to generate leave request id", err)
			}
			request.ID = id.String()
		}
		now := r.store.now()
		request.StartDate = utils.TruncateDay(request.StartDate)
		request.EndDate = utils.TruncateDay(request.EndDate)
		request.CreatedAt = now
		request.UpdatedAt = now
		r.store.leaves[request.ID] = leaveRow{seq: r.store.nextSeq(), req: request}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var found leave.LeaveRequest
	err := r.store.read(ctx, func() error {
		row, ok := r.store.leaves[id]
		if !ok {
			return leave.ErrNotFound
		}
		found = row.req
		return nil
	})
	return found, err
}

// GetByIDForUpdate implements leave.LeaveRequestRepository. Inside WithinTx the
// store's write lock already excludes every other writer.
func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

// LockEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) LockEmployee(ctx context.Context, employeeID string) error {
	return ctx.Err()
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var overlap bool
	err := r.store.read(ctx, func() error {
		for _, row := range r.store.leaves {
			req := row.req
			if req.EmployeeID != employeeID || req.Status == leave.LeaveRequestStatusRejected {
				continue
			}
			if utils.Overlaps(req.StartDate, req.EndDate, start, end) {
				overlap = true
				return nil
			}
		}
		return nil
	})
	return overlap, err
}

// selectRows returns matching rows newest first.
func (r *leaveRequestRepository) selectRows(ctx context.Context, match func(leave.LeaveRequest) bool) ([]leaveRow, error) {
	var rows []leaveRow
	err := r.store.read(ctx, func() error {
		for _, row := range r.store.leaves {
			if match(row.req) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return rows, nil
}

func (r *leaveRequestRepository) listPage(ctx context.Context, match func(leave.LeaveRequest) bool, page, limit int) ([]leave.LeaveRequest, int64, error) {
	rows, err := r.selectRows(ctx, match)
	if err != nil {
		return nil, 0, err
	}
	w := paginate(len(rows), page, limit)
	requests := make([]leave.LeaveRequest, 0, w.end-w.start)
	for _, row := range rows[w.start:w.end] {
		requests = append(requests, row.req)
	}
	return requests, int64(len(rows)), nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, page, limit int) ([]leave.LeaveRequest, int64, error) {
	return r.listPage(ctx, func(req leave.LeaveRequest) bool { return req.EmployeeID == employeeID }, page, limit)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByStatus(ctx context.Context, status leave.LeaveRequestStatus, page, limit int) ([]leave.LeaveRequest, int64, error) {
	return r.listPage(ctx, func(req leave.LeaveRequest) bool { return req.Status == status }, page, limit)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, page, limit int) ([]leave.LeaveRequest, int64, error) {
	return r.listPage(ctx, func(leave.LeaveRequest) bool { return true }, page, limit)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.listAll(ctx, func(leave.LeaveRequest) bool { return true })
}

// ListAllByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAllByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.listAll(ctx, func(req leave.LeaveRequest) bool { return req.EmployeeID == employeeID })
}

func (r *leaveRequestRepository) listAll(ctx context.Context, match func(leave.LeaveRequest) bool) ([]leave.LeaveRequest, error) {
	rows, err := r.selectRows(ctx, match)
	if err != nil {
		return nil, err
	}
	requests := make([]leave.LeaveRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.req)
	}
	return requests, nil
}

// ListApprovedByTypeInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApprovedByTypeInRange(ctx context.Context, employeeID string, leaveType leave.LeaveType, start, end time.Time) ([]leave.LeaveRequest, error) {
	rows, err := r.selectRows(ctx, func(req leave.LeaveRequest) bool {
		return req.EmployeeID == employeeID &&
			req.LeaveType == leaveType &&
			req.Status == leave.LeaveRequestStatusApproved &&
			utils.Overlaps(req.StartDate, req.EndDate, start, end)
	})
	if err != nil {
		return nil, err
	}
	requests := make([]leave.LeaveRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.req)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].StartDate.Before(requests[j].StartDate) })
	return requests, nil
}

// UpdateDecision implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateDecision(ctx context.Context, id string, status leave.LeaveRequestStatus, approvedBy *string, decidedAt time.Time) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := r.store.write(ctx, func() error {
		row, ok := r.store.leaves[id]
		if !ok {
			return leave.ErrNotFound
		}
		if row.req.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyDecided
		}
		at := decidedAt
		row.req.Status = status
		row.req.ApprovedBy = approvedBy
		row.req.DecidedAt = &at
		row.req.UpdatedAt = r.store.now()
		r.store.leaves[id] = row
		updated = row.req
		return nil
	})
	return updated, err
}
