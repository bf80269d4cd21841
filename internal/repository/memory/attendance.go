package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func keyOf(employeeID string, date time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, date: utils.FormatDate(date)}
}

func (a *attendanceRepository) insert(employeeID string, date time.Time) (attendanceRow, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendanceRow{}, database.StoreError("failed to generate attendance id", err)
	}
	now := a.store.now()
	return attendanceRow{
		seq: a.store.nextSeq(),
		att: attendance.Attendance{
			ID:         id.String(),
			EmployeeID: employeeID,
			Date:       utils.TruncateDay(date),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	var found *attendance.Attendance
	err := a.store.read(ctx, func() error {
		if row, ok := a.store.attendances[keyOf(employeeID, date)]; ok {
			att := row.att
			found = &att
		}
		return nil
	})
	return found, err
}

// UpsertCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (attendance.Attendance, error) {
	var result attendance.Attendance
	err := a.store.write(ctx, func() error {
		key := keyOf(employeeID, date)
		row, ok := a.store.attendances[key]
		if ok && row.att.ClockIn != nil {
			return attendance.ErrAlreadyCheckedIn
		}
		if !ok {
			var err error
			if row, err = a.insert(employeeID, date); err != nil {
				return err
			}
		}
		in := clockIn
		row.att.ClockIn = &in
		row.att.Status = attendance.StatusPresent
		row.att.LeaveRequestID = nil
		row.att.UpdatedAt = a.store.now()
		a.store.attendances[key] = row
		result = row.att
		return nil
	})
	return result, err
}

// MarkCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkCheckOut(ctx context.Context, employeeID string, date time.Time, clockOut time.Time) (attendance.Attendance, error) {
	var result attendance.Attendance
	err := a.store.write(ctx, func() error {
		key := keyOf(employeeID, date)
		row, ok := a.store.attendances[key]
		if !ok || row.att.ClockIn == nil {
			return attendance.ErrNoCheckInFound
		}
		if row.att.ClockOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		out := clockOut
		row.att.ClockOut = &out
		row.att.UpdatedAt = a.store.now()
		a.store.attendances[key] = row
		result = row.att
		return nil
	})
	return result, err
}

// UpsertStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status, leaveRequestID *string) (attendance.Attendance, error) {
	var result attendance.Attendance
	err := a.store.write(ctx, func() error {
		key := keyOf(employeeID, date)
		row, ok := a.store.attendances[key]
		if !ok {
			var err error
			if row, err = a.insert(employeeID, date); err != nil {
				return err
			}
		}
		row.att.Status = status
		row.att.LeaveRequestID = leaveRequestID
		row.att.UpdatedAt = a.store.now()
		a.store.attendances[key] = row
		result = row.att
		return nil
	})
	return result, err
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	return a.listRange(ctx, func(att attendance.Attendance) bool { return att.EmployeeID == employeeID }, start, end)
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	return a.listRange(ctx, func(attendance.Attendance) bool { return true }, start, end)
}

func (a *attendanceRepository) listRange(ctx context.Context, match func(attendance.Attendance) bool, start, end time.Time) ([]attendance.Attendance, error) {
	attendances := make([]attendance.Attendance, 0)
	err := a.store.read(ctx, func() error {
		for _, row := range a.store.attendances {
			if !match(row.att) {
				continue
			}
			if utils.Overlaps(row.att.Date, row.att.Date, start, end) {
				attendances = append(attendances, row.att)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(attendances, func(i, j int) bool {
		return attendances[i].Date.After(attendances[j].Date)
	})
	return attendances, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, page, limit int) ([]attendance.Attendance, int64, error) {
	var rows []attendanceRow
	err := a.store.read(ctx, func() error {
		day := utils.FormatDate(date)
		for key, row := range a.store.attendances {
			if key.date == day {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	w := paginate(len(rows), page, limit)
	attendances := make([]attendance.Attendance, 0, w.end-w.start)
	for _, row := range rows[w.start:w.end] {
		attendances = append(attendances, row.att)
	}
	return attendances, int64(len(rows)), nil
}

type window struct {
	start, end int
}

// paginate clamps a 1-based page of size limit to [0, total).
func paginate(total, page, limit int) window {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return window{}
	}
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := total
	if limit < total-start {
		end = start + limit
	}
	return window{start: start, end: end}
}
