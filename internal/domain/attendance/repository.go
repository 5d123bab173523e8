package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Every method honours a transaction carried in ctx.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when no record exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*Attendance, error)

	// Upsert inserts the record or replaces all four slots of the existing
	// (employee_id, date) row.
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// ListByEmployeeBetween returns one employee's records for an inclusive date range.
	ListByEmployeeBetween(ctx context.Context, employeeID int, from, to time.Time) ([]Attendance, error)

	// List retrieves records joined with employee names, newest first.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// DeleteByEmployee removes every record of one employee.
	DeleteByEmployee(ctx context.Context, employeeID int) (int64, error)
}

type SyncRunRepository interface {
	Create(ctx context.Context, run SyncRun) error
	Finish(ctx context.Context, run SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]SyncRun, error)
}
