package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	clock clock.Clock
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.End.Before(req.Start) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidRange
	}

	var created leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.LeaveRequestRepository.LockEmployee(ctx, req.EmployeeID); err != nil {
			return err
		}

		overlap, err := s.LeaveRequestRepository.HasOverlap(ctx, req.EmployeeID, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		created, err = s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID: req.EmployeeID,
			LeaveType:  leave.LeaveType(req.LeaveType),
			StartDate:  req.Start,
			EndDate:    req.End,
			Reason:     req.Reason,
			Status:     leave.LeaveRequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted",
		"leave_request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"days", created.TotalDays(),
	)
	return leave.ToResponse(created), nil
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyDecided
		}

		status := leave.LeaveRequestStatusRejected
		var approvedBy *string
		if leave.Decision(req.Decision) == leave.DecisionApproved {
			status = leave.LeaveRequestStatusApproved
			approver := req.ApproverID
			approvedBy = &approver
		}

		decided, err = s.LeaveRequestRepository.UpdateDecision(ctx, request.ID, status, approvedBy, s.clock.Now())
		if err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}

		if status != leave.LeaveRequestStatusApproved {
			return nil
		}

		// Approved: every day of the range becomes a leave day.
		leaveID := decided.ID
		for _, day := range utils.EachDay(decided.StartDate, decided.EndDate) {
			if _, err := s.AttendanceRepository.UpsertStatus(ctx, decided.EmployeeID, day, attendance.StatusLeave, &leaveID); err != nil {
				return fmt.Errorf("failed to mark %s as leave: %w", utils.FormatDate(day), err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided",
		"leave_request_id", decided.ID,
		"employee_id", decided.EmployeeID,
		"status", decided.Status,
		"approver_id", req.ApproverID,
	)
	return leave.ToResponse(decided), nil
}

// GetForEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) GetForEmployee(ctx context.Context, employeeID string, filter leave.PageFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID, filter.Page, filter.Limit)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to get employee leave requests: %w", err)
	}
	return buildListResponse(requests, total, filter), nil
}

// GetPending implements leave.LeaveService.
func (s *LeaveServiceImpl) GetPending(ctx context.Context, filter leave.PageFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByStatus(ctx, leave.LeaveRequestStatusPending, filter.Page, filter.Limit)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to get pending leave requests: %w", err)
	}
	return buildListResponse(requests, total, filter), nil
}

// GetHistory implements leave.LeaveService.
func (s *LeaveServiceImpl) GetHistory(ctx context.Context, filter leave.PageFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter.Page, filter.Limit)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to get leave history: %w", err)
	}
	return buildListResponse(requests, total, filter), nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, leaveID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return leave.ToResponse(request), nil
}

func buildListResponse(requests []leave.LeaveRequest, total int64, filter leave.PageFilter) leave.ListLeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min((filter.Page)*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    totalPages,
		Showing:       showing,
		LeaveRequests: responses,
	}
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepo,
		AttendanceRepository:   attendanceRepo,
		clock:                  clk,
	}
}
