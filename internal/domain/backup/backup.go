// Package backup describes a full copy of the attendance store written as a
// single JSON document.
package backup

import (
	"context"
	"io"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// FormatVersion is bumped whenever the document layout changes.
const FormatVersion = 1

type Snapshot struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Employees     []EmployeeRow     `json:"employees"`
	Attendance    []AttendanceRow   `json:"attendance"`
	Holidays      []string          `json:"holidays"`
	Settings      map[string]string `json:"settings"`
}

type EmployeeRow struct {
	FingerID  int       `json:"finger_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AttendanceRow struct {
	EmployeeID int            `json:"employee_id"`
	Date       string         `json:"date"`
	CheckIn    clock.NullTime `json:"check_in"`
	CheckOut   clock.NullTime `json:"check_out"`
	CheckIn2   clock.NullTime `json:"check_in_2"`
	CheckOut2  clock.NullTime `json:"check_out_2"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Summary counts what a written backup holds.
type Summary struct {
	CreatedAt  time.Time `json:"created_at"`
	Employees  int       `json:"employees"`
	Attendance int       `json:"attendance"`
	Holidays   int       `json:"holidays"`
	Settings   int       `json:"settings"`
}

// FileName is the default name of a backup taken at t.
func FileName(t time.Time) string {
	return "backup_" + t.Format("20060102_1504") + ".json"
}

type BackupRepository interface {
	// AllAttendance returns every attendance record ordered by date, then employee.
	AllAttendance(ctx context.Context) ([]attendance.Attendance, error)
}

type BackupService interface {
	// Write encodes one consistent snapshot of the store to w.
	Write(ctx context.Context, w io.Writer) (Summary, error)
}
