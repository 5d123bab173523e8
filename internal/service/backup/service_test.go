package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

type snapshotKey struct{}

// recordingSnapshots marks the context so fakes can tell they ran inside it.
type recordingSnapshots struct {
	calls int
}

func (r *recordingSnapshots) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(context.WithValue(ctx, snapshotKey{}, true))
}

func inSnapshot(ctx context.Context) bool {
	v, _ := ctx.Value(snapshotKey{}).(bool)
	return v
}

type fakeBackupRepo struct {
	records []attendance.Attendance
	err     error
	outside bool
}

func (f *fakeBackupRepo) AllAttendance(ctx context.Context) ([]attendance.Attendance, error) {
	f.outside = f.outside || !inSnapshot(ctx)
	return f.records, f.err
}

type fakeEmployees struct {
	employee.EmployeeRepository
	rows    []employee.Employee
	filter  employee.EmployeeFilter
	outside bool
}

func (f *fakeEmployees) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	f.outside = f.outside || !inSnapshot(ctx)
	f.filter = filter
	return f.rows, nil
}

type fakeHolidays struct {
	holiday.HolidayRepository
	days []time.Time
}

func (f *fakeHolidays) List(ctx context.Context) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, d := range f.days {
		out = append(out, holiday.Holiday{Date: d})
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings.SettingsRepository
	values map[string]string
}

func (f *fakeSettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	return f.values, nil
}

type fixture struct {
	svc       *BackupServiceImpl
	snapshots *recordingSnapshots
	backups   *fakeBackupRepo
	employees *fakeEmployees
}

func newFixture() *fixture {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	f := &fixture{
		snapshots: &recordingSnapshots{},
		backups: &fakeBackupRepo{records: []attendance.Attendance{
			{
				EmployeeID: 1,
				Date:       time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
				CheckIn:    clock.Some(clock.New(8, 1)),
				CheckOut:   clock.Some(clock.New(14, 0)),
			},
			{
				EmployeeID: 404,
				Date:       time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
				CheckIn2:   clock.ParseNull("bogus"),
			},
		}},
		employees: &fakeEmployees{rows: []employee.Employee{
			{FingerID: 1, Name: "Ahmad", Active: true, CreatedAt: created, UpdatedAt: created},
			{FingerID: 2, Name: "Sara", Active: false, CreatedAt: created, UpdatedAt: created},
		}},
	}
	svc := NewBackupService(
		f.snapshots,
		f.backups,
		f.employees,
		&fakeHolidays{days: []time.Time{time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)}},
		&fakeSettingsRepo{values: map[string]string{settings.KeyDeviceIP: "10.0.0.5", settings.KeyCommKey: "0"}},
		nil,
	).(*BackupServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 5, 8, 17, 30, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestWrite_DumpsEveryTable(t *testing.T) {
	f := newFixture()
	var buf bytes.Buffer

	summary, err := f.svc.Write(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, backup.Summary{
		CreatedAt:  time.Date(2024, 5, 8, 17, 30, 0, 0, time.UTC),
		Employees:  2,
		Attendance: 2,
		Holidays:   1,
		Settings:   2,
	}, summary)

	var snap backup.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, backup.FormatVersion, snap.FormatVersion)
	require.Len(t, snap.Employees, 2)
	assert.Equal(t, "Sara", snap.Employees[1].Name)
	assert.False(t, snap.Employees[1].Active)
	require.Len(t, snap.Attendance, 2)
	assert.Equal(t, "2024-05-02", snap.Attendance[0].Date)
	assert.Equal(t, "08:01", snap.Attendance[0].CheckIn.String())
	assert.False(t, snap.Attendance[0].CheckIn2.Present())
	assert.Equal(t, "bogus", snap.Attendance[1].CheckIn2.String(), "unparsed slots survive verbatim")
	assert.Equal(t, []string{"2024-05-07"}, snap.Holidays)
	assert.Equal(t, "10.0.0.5", snap.Settings[settings.KeyDeviceIP])
}

func TestWrite_ReadsInsideOneSnapshot(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Write(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.snapshots.calls)
	assert.False(t, f.backups.outside)
	assert.False(t, f.employees.outside)
	assert.Equal(t, employee.EmployeeFilter{}, f.employees.filter, "inactive employees are included")
}

func TestWrite_EmptyStoreHasEmptyLists(t *testing.T) {
	f := newFixture()
	f.backups.records = nil
	f.employees.rows = nil
	var buf bytes.Buffer

	_, err := f.svc.Write(context.Background(), &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"employees": []`)
	assert.Contains(t, buf.String(), `"attendance": []`)
}

func TestWrite_ReadFailureWritesNothing(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	f.backups.err = boom
	var buf bytes.Buffer

	_, err := f.svc.Write(context.Background(), &buf)

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, buf.Len())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "backup_20240508_1730.json", backup.FileName(time.Date(2024, 5, 8, 17, 30, 59, 0, time.UTC)))
}
