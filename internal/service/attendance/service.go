package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clock clock.Clock
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.clock.Today()
	now := a.clock.Now()

	att, err := a.AttendanceRepository.UpsertCheckIn(ctx, employeeID, today, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("Employee checked in", "employee_id", employeeID, "date", utils.FormatDate(today), "attendance_id", att.ID)
	return attendance.ToResponse(att), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := a.clock.Today()
	now := a.clock.Now()

	att, err := a.AttendanceRepository.MarkCheckOut(ctx, employeeID, today, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "date", utils.FormatDate(today), "worked", att.WorkedDuration().String())
	return attendance.ToResponse(att), nil
}

// GetDaily implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDaily(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, utils.TruncateDay(date))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily attendance: %w", err)
	}
	if att == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*att)
	return &resp, nil
}

// GetMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthly(ctx context.Context, filter attendance.MonthlyFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, end := utils.MonthRange(filter.Year, time.Month(filter.Month))
	attendances, err := a.AttendanceRepository.ListByEmployeeAndRange(ctx, filter.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.ToResponse(att))
	}
	return responses, nil
}

// ListForDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListForDate(ctx context.Context, filter attendance.DateFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	date := a.clock.Today()
	if filter.Date != nil && *filter.Date != "" {
		parsed, err := utils.ParseDate(*filter.Date)
		if err != nil {
			return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		date = parsed
	}

	attendances, total, err := a.AttendanceRepository.ListByDate(ctx, date, filter.Page, filter.Limit)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.ToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min((filter.Page)*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, clk clock.Clock) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		clock:                clk,
	}
}
