package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
	"github.com/workzen/hrms-backend-go/internal/repository/memory"
)

type testEnv struct {
	svc         report.ReportService
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
}

func newTestEnv() testEnv {
	store := memory.NewStore()
	env := testEnv{
		attendances: memory.NewAttendanceRepository(store),
		leaves:      memory.NewLeaveRequestRepository(store),
	}
	env.svc = NewReportService(env.attendances, env.leaves)
	return env
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func (e testEnv) seedLeave(t *testing.T, employeeID string, leaveType leave.LeaveType, status leave.LeaveRequestStatus, start, end string) leave.LeaveRequest {
	t.Helper()
	ctx := context.Background()
	created, err := e.leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  day(t, start),
		EndDate:    day(t, end),
		Status:     leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	if status == leave.LeaveRequestStatusPending {
		return created
	}
	var approver *string
	if status == leave.LeaveRequestStatusApproved {
		mgr := "mgr-1"
		approver = &mgr
	}
	decided, err := e.leaves.UpdateDecision(ctx, created.ID, status, approver, time.Now().UTC())
	require.NoError(t, err)
	return decided
}

func TestAttendanceSummary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	start, _ := utils.MonthRange(2024, time.March)
	for i := 0; i < 20; i++ {
		_, err := env.attendances.UpsertStatus(ctx, "emp-1", start.AddDate(0, 0, i), attendance.StatusPresent, nil)
		require.NoError(t, err)
	}
	for i := 20; i < 23; i++ {
		_, err := env.attendances.UpsertStatus(ctx, "emp-1", start.AddDate(0, 0, i), attendance.StatusLeave, nil)
		require.NoError(t, err)
	}
	_, err := env.attendances.UpsertStatus(ctx, "emp-1", start.AddDate(0, 0, 23), attendance.StatusAbsent, nil)
	require.NoError(t, err)
	_, err = env.attendances.UpsertStatus(ctx, "emp-1", start.AddDate(0, 0, 24), attendance.StatusHalfDay, nil)
	require.NoError(t, err)
	// Outside the month.
	_, err = env.attendances.UpsertStatus(ctx, "emp-1", day(t, "2024-04-01"), attendance.StatusPresent, nil)
	require.NoError(t, err)

	summary, err := env.svc.AttendanceSummary(ctx, report.AttendanceSummaryRequest{EmployeeID: "emp-1", Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 31, summary.TotalDays)
	assert.Equal(t, 20, summary.Present)
	assert.Equal(t, 3, summary.Leave)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, "64.52", summary.AttendanceRate.StringFixed(2))
}

func TestAttendanceSummary_EmptyMonth(t *testing.T) {
	env := newTestEnv()

	summary, err := env.svc.AttendanceSummary(context.Background(), report.AttendanceSummaryRequest{EmployeeID: "emp-1", Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 29, summary.TotalDays)
	assert.True(t, summary.AttendanceRate.IsZero())

	_, err = env.svc.AttendanceSummary(context.Background(), report.AttendanceSummaryRequest{EmployeeID: "emp-1", Year: 2024, Month: 0})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLeaveSummary(t *testing.T) {
	env := newTestEnv()

	env.seedLeave(t, "emp-1", leave.LeaveTypeCasual, leave.LeaveRequestStatusApproved, "2024-03-10", "2024-03-12")
	env.seedLeave(t, "emp-1", leave.LeaveTypeSick, leave.LeaveRequestStatusApproved, "2024-04-01", "2024-04-02")
	env.seedLeave(t, "emp-1", leave.LeaveTypeAnnual, leave.LeaveRequestStatusRejected, "2024-05-01", "2024-05-10")
	env.seedLeave(t, "emp-1", leave.LeaveTypeAnnual, leave.LeaveRequestStatusPending, "2024-06-01", "2024-06-10")
	env.seedLeave(t, "emp-2", leave.LeaveTypeAnnual, leave.LeaveRequestStatusApproved, "2024-06-01", "2024-06-10")

	summary, err := env.svc.LeaveSummary(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", summary.EmployeeID)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 2, summary.Approved)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 5, summary.TotalDays)
	require.Len(t, summary.RecentRequests, 4)
	assert.Equal(t, "2024-06-01", summary.RecentRequests[0].StartDate)
	assert.Equal(t, "2024-03-10", summary.RecentRequests[3].StartDate)
}

func TestLeaveSummary_AllEmployees(t *testing.T) {
	env := newTestEnv()

	env.seedLeave(t, "emp-1", leave.LeaveTypeCasual, leave.LeaveRequestStatusApproved, "2024-03-10", "2024-03-12")
	env.seedLeave(t, "emp-2", leave.LeaveTypeSick, leave.LeaveRequestStatusRejected, "2024-03-10", "2024-03-10")
	env.seedLeave(t, "emp-3", leave.LeaveTypeAnnual, leave.LeaveRequestStatusApproved, "2024-04-01", "2024-04-02")
	env.seedLeave(t, "emp-1", leave.LeaveTypeSick, leave.LeaveRequestStatusPending, "2024-05-01", "2024-05-01")
	env.seedLeave(t, "emp-2", leave.LeaveTypeUnpaid, leave.LeaveRequestStatusPending, "2024-05-02", "2024-05-03")
	env.seedLeave(t, "emp-4", leave.LeaveTypeCasual, leave.LeaveRequestStatusPending, "2024-05-06", "2024-05-06")

	summary, err := env.svc.LeaveSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, summary.EmployeeID)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 3, summary.Pending)
	assert.Equal(t, 2, summary.Approved)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 5, summary.TotalDays)

	// Five newest, newest first.
	require.Len(t, summary.RecentRequests, 5)
	assert.Equal(t, "emp-4", summary.RecentRequests[0].EmployeeID)
	assert.Equal(t, "emp-2", summary.RecentRequests[4].EmployeeID)
	assert.Equal(t, "rejected", summary.RecentRequests[4].Status)
}

func TestAttendanceSummary_AllEmployees(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	start, _ := utils.MonthRange(2024, time.February)
	for i := 0; i < 29; i++ {
		_, err := env.attendances.UpsertStatus(ctx, "emp-1", start.AddDate(0, 0, i), attendance.StatusPresent, nil)
		require.NoError(t, err)
	}
	for i := 0; i < 10; i++ {
		_, err := env.attendances.UpsertStatus(ctx, "emp-2", start.AddDate(0, 0, i), attendance.StatusPresent, nil)
		require.NoError(t, err)
	}
	_, err := env.attendances.UpsertStatus(ctx, "emp-2", start.AddDate(0, 0, 10), attendance.StatusLeave, nil)
	require.NoError(t, err)
	// Outside the month.
	_, err = env.attendances.UpsertStatus(ctx, "emp-3", day(t, "2024-03-01"), attendance.StatusPresent, nil)
	require.NoError(t, err)

	summary, err := env.svc.AttendanceSummary(ctx, report.AttendanceSummaryRequest{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Empty(t, summary.EmployeeID)
	assert.Equal(t, 2, summary.Employees)
	assert.Equal(t, 29, summary.TotalDays)
	assert.Equal(t, 39, summary.Present)
	assert.Equal(t, 1, summary.Leave)
	// 39 of 58 possible employee-days.
	assert.Equal(t, "67.24", summary.AttendanceRate.StringFixed(2))

	empty, err := env.svc.AttendanceSummary(ctx, report.AttendanceSummaryRequest{Year: 2023, Month: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Employees)
	assert.True(t, empty.AttendanceRate.IsZero())
}

func TestUnpaidLeaveDaysInPeriod(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedLeave(t, "emp-1", leave.LeaveTypeUnpaid, leave.LeaveRequestStatusApproved, "2024-02-25", "2024-03-05")
	env.seedLeave(t, "emp-1", leave.LeaveTypeUnpaid, leave.LeaveRequestStatusPending, "2024-03-20", "2024-03-22")
	env.seedLeave(t, "emp-1", leave.LeaveTypeUnpaid, leave.LeaveRequestStatusRejected, "2024-03-25", "2024-03-26")
	env.seedLeave(t, "emp-1", leave.LeaveTypeSick, leave.LeaveRequestStatusApproved, "2024-03-10", "2024-03-11")

	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"march", "2024-03-01", "2024-03-31", 5},
		{"february", "2024-02-01", "2024-02-29", 5},
		{"whole span", "2024-02-01", "2024-03-31", 10},
		{"single day inside", "2024-03-03", "2024-03-03", 1},
		{"april", "2024-04-01", "2024-04-30", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.svc.UnpaidLeaveDaysInPeriod(ctx, "emp-1", day(t, tt.start), day(t, tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Days)
			assert.Equal(t, tt.start, got.PeriodStart)
		})
	}

	_, err := env.svc.UnpaidLeaveDaysInPeriod(ctx, "emp-1", day(t, "2024-03-31"), day(t, "2024-03-01"))
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}
