package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out, a.check_in_2, a.check_out_2, a.updated_at`

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := append([]any{
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.CheckIn2, &a.CheckOut2, &a.UpdatedAt,
	}, extra...)
	err := row.Scan(dest...)
	return a, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance a WHERE a.employee_id = $1 AND a.date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %d on %s: %w", employeeID, date.Format("2006-01-02"), err)
	}
	return &a, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, date, check_in, check_out, check_in_2, check_out_2)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			check_in_2 = EXCLUDED.check_in_2,
			check_out_2 = EXCLUDED.check_out_2,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date,
		record.CheckIn, record.CheckOut, record.CheckIn2, record.CheckOut2,
	).Scan(&record.ID, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return record, nil
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID int, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `, e.name
		FROM attendance a
		LEFT JOIN employees e ON e.finger_id = a.employee_id
		WHERE ($1::int IS NULL OR a.employee_id = $1)
			AND ($2::date IS NULL OR a.date >= $2)
			AND ($3::date IS NULL OR a.date <= $3)
		ORDER BY a.date DESC, a.employee_id ASC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, filter.EmployeeID, filter.From, filter.To, filter.Limit, filter.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var name *string
		a, err := scanAttendance(rows, &name)
		if err != nil {
			return nil, err
		}
		a.EmployeeName = name
		records = append(records, a)
	}
	return records, rows.Err()
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance of employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}
