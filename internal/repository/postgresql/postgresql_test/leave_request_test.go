package postgresql_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newPending(t *testing.T, employeeID string, leaveType leave.LeaveType, start, end string) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  mustDay(t, start),
		EndDate:    mustDay(t, end),
		Status:     leave.LeaveRequestStatusPending,
	}
}

func TestLeaveRequestRepository_CreateAndOverlap(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPending(t, "emp-1", leave.LeaveTypeCasual, "2024-03-10", "2024-03-12"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, 3, created.TotalDays())

	tests := []struct {
		name       string
		employeeID string
		start, end string
		want       bool
	}{
		{"same range", "emp-1", "2024-03-10", "2024-03-12", true},
		{"touching end", "emp-1", "2024-03-12", "2024-03-15", true},
		{"after", "emp-1", "2024-03-13", "2024-03-15", false},
		{"other employee", "emp-2", "2024-03-10", "2024-03-12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasOverlap(ctx, tt.employeeID, mustDay(t, tt.start), mustDay(t, tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaveRequestRepository_UpdateDecision(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPending(t, "emp-1", leave.LeaveTypeUnpaid, "2024-02-25", "2024-03-05"))
	require.NoError(t, err)

	approver := "mgr-1"
	decided, err := repo.UpdateDecision(ctx, created.ID, leave.LeaveRequestStatusApproved, &approver, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, approver, *decided.ApprovedBy)
	assert.NotNil(t, decided.DecidedAt)

	_, err = repo.UpdateDecision(ctx, created.ID, leave.LeaveRequestStatusRejected, nil, time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)

	_, err = repo.UpdateDecision(ctx, "0190a1b2-0000-7000-8000-000000000000", leave.LeaveRequestStatusRejected, nil, time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrNotFound)

	monthStart, monthEnd := utils.MonthRange(2024, time.March)
	approved, err := repo.ListApprovedByTypeInRange(ctx, "emp-1", leave.LeaveTypeUnpaid, monthStart, monthEnd)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, 5, utils.OverlapDays(approved[0].StartDate, approved[0].EndDate, monthStart, monthEnd))
}

func TestLeaveRequestRepository_Lists(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	ctx := context.Background()

	first, err := repo.Create(ctx, newPending(t, "emp-1", leave.LeaveTypeSick, "2024-04-01", "2024-04-01"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPending(t, "emp-1", leave.LeaveTypeAnnual, "2024-05-01", "2024-05-03"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPending(t, "emp-2", leave.LeaveTypeCasual, "2024-04-01", "2024-04-02"))
	require.NoError(t, err)

	_, err = repo.UpdateDecision(ctx, first.ID, leave.LeaveRequestStatusRejected, nil, time.Now().UTC())
	require.NoError(t, err)

	mine, total, err := repo.ListByEmployee(ctx, "emp-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, mine, 2)
	assert.Equal(t, leave.LeaveTypeAnnual, mine[0].LeaveType)

	pending, total, err := repo.ListByStatus(ctx, leave.LeaveRequestStatusPending, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pending, 1)

	all, total, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 1)

	beyond, total, err := repo.List(ctx, math.MaxInt, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, beyond)

	everything, err := repo.ListAllByEmployee(ctx, "emp-2")
	require.NoError(t, err)
	assert.Len(t, everything, 1)

	org, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, org, 3)
	assert.Equal(t, "emp-2", org[0].EmployeeID)
	assert.Equal(t, first.ID, org[2].ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, leave.ErrNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	leaves := postgresql.NewLeaveRequestRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)
	ctx := context.Background()

	created, err := leaves.Create(ctx, newPending(t, "emp-1", leave.LeaveTypeCasual, "2024-06-03", "2024-06-04"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := leaves.LockEmployee(ctx, "emp-1"); err != nil {
			return err
		}
		if _, err := leaves.GetByIDForUpdate(ctx, created.ID); err != nil {
			return err
		}
		approver := "mgr-1"
		if _, err := leaves.UpdateDecision(ctx, created.ID, leave.LeaveRequestStatusApproved, &approver, time.Now().UTC()); err != nil {
			return err
		}
		if _, err := attendances.UpsertStatus(ctx, "emp-1", created.StartDate, attendance.StatusLeave, &created.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := leaves.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, got.Status)

	att, err := attendances.GetByEmployeeAndDate(ctx, "emp-1", created.StartDate)
	require.NoError(t, err)
	assert.Nil(t, att)
}
