package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

// recentRequests is how many of the newest requests a leave summary lists.
const recentRequests = 5

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.AttendanceSummaryRequest) (report.AttendanceSummary, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceSummary{}, err
	}

	month := time.Month(req.Month)
	start, end := utils.MonthRange(req.Year, month)

	var (
		records []attendance.Attendance
		err     error
	)
	if req.EmployeeID == "" {
		records, err = s.AttendanceRepository.ListByRange(ctx, start, end)
	} else {
		records, err = s.AttendanceRepository.ListByEmployeeAndRange(ctx, req.EmployeeID, start, end)
	}
	if err != nil {
		return report.AttendanceSummary{}, fmt.Errorf("failed to get attendance for summary: %w", err)
	}

	summary := report.AttendanceSummary{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
		TotalDays:  utils.DaysInMonth(req.Year, month),
	}
	employees := make(map[string]struct{})
	for _, r := range records {
		employees[r.EmployeeID] = struct{}{}
		switch r.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
	}

	possibleDays := summary.TotalDays
	if req.EmployeeID == "" {
		summary.Employees = len(employees)
		possibleDays *= summary.Employees
	}

	summary.AttendanceRate = decimal.Zero
	if possibleDays > 0 {
		summary.AttendanceRate = decimal.NewFromInt(int64(summary.Present)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(possibleDays))).
			Round(2)
	}

	return summary, nil
}

// LeaveSummary implements report.ReportService.
func (s *ReportServiceImpl) LeaveSummary(ctx context.Context, employeeID string) (report.LeaveSummary, error) {
	var (
		requests []leave.LeaveRequest
		err      error
	)
	if employeeID == "" {
		requests, err = s.LeaveRequestRepository.ListAll(ctx)
	} else {
		requests, err = s.LeaveRequestRepository.ListAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		return report.LeaveSummary{}, fmt.Errorf("failed to get leave requests for summary: %w", err)
	}

	summary := report.LeaveSummary{
		EmployeeID:     employeeID,
		Total:          len(requests),
		RecentRequests: make([]leave.LeaveRequestResponse, 0, recentRequests),
	}
	// requests arrive newest first
	for i, r := range requests {
		if i < recentRequests {
			summary.RecentRequests = append(summary.RecentRequests, leave.ToResponse(r))
		}
		switch r.Status {
		case leave.LeaveRequestStatusPending:
			summary.Pending++
		case leave.LeaveRequestStatusApproved:
			summary.Approved++
			summary.TotalDays += r.TotalDays()
		case leave.LeaveRequestStatusRejected:
			summary.Rejected++
		}
	}

	return summary, nil
}

// UnpaidLeaveDaysInPeriod implements report.ReportService.
func (s *ReportServiceImpl) UnpaidLeaveDaysInPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (report.UnpaidLeaveDays, error) {
	periodStart, periodEnd = utils.TruncateDay(periodStart), utils.TruncateDay(periodEnd)
	if periodEnd.Before(periodStart) {
		return report.UnpaidLeaveDays{}, leave.ErrInvalidRange
	}

	requests, err := s.LeaveRequestRepository.ListApprovedByTypeInRange(ctx, employeeID, leave.LeaveTypeUnpaid, periodStart, periodEnd)
	if err != nil {
		return report.UnpaidLeaveDays{}, fmt.Errorf("failed to get unpaid leave: %w", err)
	}

	days := 0
	for _, r := range requests {
		days += utils.OverlapDays(r.StartDate, r.EndDate, periodStart, periodEnd)
	}

	return report.UnpaidLeaveDays{
		EmployeeID:  employeeID,
		PeriodStart: utils.FormatDate(periodStart),
		PeriodEnd:   utils.FormatDate(periodEnd),
		Days:        days,
	}, nil
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, leaveRequestRepo leave.LeaveRequestRepository) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
	}
}
