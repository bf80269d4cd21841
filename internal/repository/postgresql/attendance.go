package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `id, employee_id, date, clock_in, clock_out, status, leave_request_id, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.ClockIn, &att.ClockOut,
		&att.Status, &att.LeaveRequestID,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, database.StoreError("failed to get attendance", err)
	}

	return &att, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, database.StoreError("failed to generate attendance id", err)
	}

	// The WHERE clause makes the conflict branch a no-op once clock_in is set,
	// so exactly one concurrent caller gets a row back.
	query := `
		INSERT INTO attendances (id, employee_id, date, clock_in, status)
		VALUES ($1, $2, $3, $4, 'present')
		ON CONFLICT ON CONSTRAINT attendances_employee_date_key DO UPDATE
			SET clock_in = EXCLUDED.clock_in,
				status = 'present',
				leave_request_id = NULL,
				updated_at = NOW()
			WHERE attendances.clock_in IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id.String(), employeeID, date, clockIn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, database.StoreError("failed to check in", err)
	}

	return att, nil
}

// MarkCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkCheckOut(ctx context.Context, employeeID string, date time.Time, clockOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $3, updated_at = NOW()
		WHERE employee_id = $1 AND date = $2
		  AND clock_in IS NOT NULL
		  AND clock_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, clockOut))
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, database.StoreError("failed to check out", err)
	}

	// Nothing matched; tell the caller which precondition failed.
	existing, err := a.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if existing == nil || existing.ClockIn == nil {
		return attendance.Attendance{}, attendance.ErrNoCheckInFound
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

// UpsertStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status, leaveRequestID *string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, database.StoreError("failed to generate attendance id", err)
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, status, leave_request_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT attendances_employee_date_key DO UPDATE
			SET status = EXCLUDED.status,
				leave_request_id = EXCLUDED.leave_request_id,
				updated_at = NOW()
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id.String(), employeeID, date, string(status), leaveRequestID))
	if err != nil {
		return attendance.Attendance{}, database.StoreError("failed to upsert attendance status", err)
	}

	return att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, database.StoreError("failed to list attendances", err)
	}
	return collectAttendances(rows)
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE date BETWEEN $1 AND $2
		ORDER BY date DESC, employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, database.StoreError("failed to list attendances", err)
	}
	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, database.StoreError("failed to scan attendance", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, database.StoreError("failed to iterate attendances", err)
	}

	return attendances, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, page, limit int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE date = $1`, date).Scan(&total); err != nil {
		return nil, 0, database.StoreError("failed to count attendances", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE date = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, date, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, database.StoreError("failed to list attendances", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0, limit)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, database.StoreError("failed to scan attendance", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.StoreError("failed to iterate attendances", err)
	}

	return attendances, total, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
