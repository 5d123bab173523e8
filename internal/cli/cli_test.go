package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

func testCmd() (*cobra.Command, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	return cmd, stdout
}

type fakeAttendance struct {
	result   attendance.SyncResult
	syncErr  error
	clearErr error
	runs     []attendance.SyncRunResponse
	cleared  bool
}

func (f *fakeAttendance) Sync(ctx context.Context) (attendance.SyncResult, error) {
	return f.result, f.syncErr
}

func (f *fakeAttendance) ClearDevice(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

func (f *fakeAttendance) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (f *fakeAttendance) ListSyncRuns(ctx context.Context, limit int) ([]attendance.SyncRunResponse, error) {
	return f.runs, nil
}

type fakeHolidays struct {
	items   []holiday.HolidayResponse
	removed []string
}

func (f *fakeHolidays) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	return f.items, nil
}

func (f *fakeHolidays) Add(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	h := holiday.NewHolidayResponse(holiday.Holiday{Date: req.Day})
	f.items = append(f.items, h)
	return h, nil
}

func (f *fakeHolidays) Remove(ctx context.Context, date string) error {
	f.removed = append(f.removed, date)
	return nil
}

type fakeEmployees struct {
	created []employee.CreateEmployeeRequest
	deleted []int
	list    []employee.EmployeeResponse
	filter  employee.EmployeeFilter
}

func (f *fakeEmployees) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	f.filter = filter
	return f.list, nil
}

func (f *fakeEmployees) Get(ctx context.Context, fingerID int) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	f.created = append(f.created, req)
	return employee.EmployeeResponse{FingerID: req.FingerID, Name: req.Name, Active: *req.Active}, nil
}

func (f *fakeEmployees) Update(ctx context.Context, fingerID int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (f *fakeEmployees) Delete(ctx context.Context, fingerID int) error {
	if fingerID == 404 {
		return employee.ErrEmployeeNotFound
	}
	f.deleted = append(f.deleted, fingerID)
	return nil
}

type fakeReports struct {
	general report.GeneralReport
	req     report.GeneralReportRequest
}

func (f *fakeReports) Individual(ctx context.Context, req report.IndividualReportRequest) (report.IndividualReport, error) {
	d := func(day int) time.Time { return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC) }
	return report.IndividualReport{
		EmployeeID:   req.EmployeeID,
		EmployeeName: "Ahmad",
		From:         d(5),
		To:           d(6),
		Scope:        report.ScopeFirst,
		Rows: []report.DayRow{
			{Date: d(5), Status: report.DayWorkday, CheckIn1: clock.Some(clock.New(8, 10)), Late1: 10, LateTotal: 10, Present: true},
			{Date: d(6), Status: report.DayWorkday},
		},
		Summary: report.Summary{Present: 1, Absent: 1, LateMinutes: 10},
	}, nil
}

func (f *fakeReports) General(ctx context.Context, req report.GeneralReportRequest) (report.GeneralReport, error) {
	f.req = req
	return f.general, nil
}

type fakeSettings struct {
	settings.SettingsService
}

func (fakeSettings) Get(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.NewSettingsResponse(settings.Defaults()), nil
}

func TestRootHasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"sync", "sync-runs", "clear-device", "report", "holiday", "employee", "settings", "backup"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, "attendancectl", rootCmd.Use)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Date", "Day"}, [][]string{{"2024-05-07", "Tuesday"}})

	assert.Contains(t, out, "Date")
	assert.Contains(t, out, "2024-05-07")
	assert.Contains(t, out, "Tuesday")
}

func TestSync(t *testing.T) {
	cmd, stdout := testCmd()
	svc := &fakeAttendance{result: attendance.SyncResult{
		RunID: "run-1", Fetched: 7, Applied: 4, Duplicates: 1, Dropped: 1, Unregistered: 1, Invalid: 1,
	}}

	require.NoError(t, runSync(context.Background(), cmd, svc))

	out := stdout.String()
	assert.Contains(t, out, "sync completed")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Unregistered")
	assert.Contains(t, out, "1 punch(es) belong to unregistered finger ids")
}

func TestSync_InProgress(t *testing.T) {
	cmd, _ := testCmd()
	svc := &fakeAttendance{syncErr: attendance.ErrSyncInProgress}

	err := runSync(context.Background(), cmd, svc)

	assert.EqualError(t, err, "another synchronization is running, try again later")
}

func TestSyncRuns(t *testing.T) {
	cmd, stdout := testCmd()
	require.NoError(t, runSyncRuns(context.Background(), cmd, &fakeAttendance{}, 10))
	assert.Equal(t, "No synchronizations yet.\n", stdout.String())

	failure := "device unreachable"
	cmd, stdout = testCmd()
	svc := &fakeAttendance{runs: []attendance.SyncRunResponse{
		{StartedAt: "2024-05-05T09:00:00Z", Device: "10.0.0.5:4370", Status: "failed", Error: &failure},
	}}
	require.NoError(t, runSyncRuns(context.Background(), cmd, svc, 10))
	assert.Contains(t, stdout.String(), "10.0.0.5:4370")
	assert.Contains(t, stdout.String(), failure)
}

func TestClearDevice_RequiresConfirmation(t *testing.T) {
	err := clearDeviceCmd.RunE(clearDeviceCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestClearDevice(t *testing.T) {
	cmd, stdout := testCmd()
	svc := &fakeAttendance{}

	require.NoError(t, runClearDevice(context.Background(), cmd, svc))

	assert.True(t, svc.cleared)
	assert.Equal(t, "terminal log cleared\n", stdout.String())
}

func TestHolidayCommands(t *testing.T) {
	svc := &fakeHolidays{}

	cmd, stdout := testCmd()
	require.NoError(t, runHolidayList(context.Background(), cmd, svc))
	assert.Equal(t, "No holidays found.\n", stdout.String())

	cmd, stdout = testCmd()
	require.NoError(t, runHolidayAdd(context.Background(), cmd, svc, "2024-05-07"))
	assert.Equal(t, "holiday 2024-05-07 (Tuesday) added\n", stdout.String())

	cmd, _ = testCmd()
	err := runHolidayAdd(context.Background(), cmd, svc, "07/05/2024")
	assert.EqualError(t, err, "date: date must be in YYYY-MM-DD format")

	cmd, stdout = testCmd()
	require.NoError(t, runHolidayList(context.Background(), cmd, svc))
	assert.Contains(t, stdout.String(), "2024-05-07")
	assert.Contains(t, stdout.String(), "Tuesday")

	cmd, _ = testCmd()
	require.NoError(t, runHolidayRemove(context.Background(), cmd, svc, "2024-05-07"))
	assert.Equal(t, []string{"2024-05-07"}, svc.removed)
}

func TestEmployeeAdd(t *testing.T) {
	cmd, stdout := testCmd()
	svc := &fakeEmployees{}

	require.NoError(t, runEmployeeAdd(context.Background(), cmd, svc, []string{"12", "Sara", "Ali"}, true))

	require.Len(t, svc.created, 1)
	assert.Equal(t, 12, svc.created[0].FingerID)
	assert.Equal(t, "Sara Ali", svc.created[0].Name)
	assert.True(t, *svc.created[0].Active)
	assert.Equal(t, "employee Sara Ali registered as #12\n", stdout.String())
}

func TestEmployeeAdd_BadFingerID(t *testing.T) {
	cmd, _ := testCmd()
	svc := &fakeEmployees{}

	err := runEmployeeAdd(context.Background(), cmd, svc, []string{"twelve", "Sara"}, true)

	assert.EqualError(t, err, `finger id must be a number: "twelve"`)
	assert.Empty(t, svc.created)
}

func TestEmployeeRemove(t *testing.T) {
	svc := &fakeEmployees{}

	cmd, _ := testCmd()
	require.NoError(t, runEmployeeRemove(context.Background(), cmd, svc, "5"))
	assert.Equal(t, []int{5}, svc.deleted)

	cmd, _ = testCmd()
	err := runEmployeeRemove(context.Background(), cmd, svc, "404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeList(t *testing.T) {
	cmd, stdout := testCmd()
	svc := &fakeEmployees{list: []employee.EmployeeResponse{
		{FingerID: 1, Name: "Ahmad", Active: true},
		{FingerID: 2, Name: "Sara", Active: false},
	}}

	require.NoError(t, runEmployeeList(context.Background(), cmd, svc, employee.EmployeeFilter{}))

	out := stdout.String()
	assert.Contains(t, out, "Ahmad")
	assert.Contains(t, out, "Sara")
	assert.Contains(t, out, "no")
}

func TestEmployeeList_SearchFlag(t *testing.T) {
	flags := employeeListCmd.Flags()
	require.NotNil(t, flags.Lookup("search"))

	cmd, stdout := testCmd()
	svc := &fakeEmployees{}
	filter := employee.EmployeeFilter{Search: "sara", ActiveOnly: true}

	require.NoError(t, runEmployeeList(context.Background(), cmd, svc, filter))

	assert.Equal(t, filter, svc.filter)
	assert.Contains(t, stdout.String(), "No employees found.")
}

func TestSettingsShow(t *testing.T) {
	cmd, stdout := testCmd()

	require.NoError(t, runSettingsShow(context.Background(), cmd, fakeSettings{}))

	out := stdout.String()
	assert.Contains(t, out, "192.168.1.205:4370")
	assert.Contains(t, out, "08:00 - 14:00")
	assert.Contains(t, out, "20:00 - 01:00")
	assert.Contains(t, out, "none")
}

func reportCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := LeafCommand{Use: "test", StrFlags: reportFlags}.Build()
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestReadReportOptions(t *testing.T) {
	opts, err := readReportOptions(reportCommand(t, map[string]string{"from": "2024-05-01", "to": "2024-05-31"}))
	require.NoError(t, err)
	assert.Equal(t, outputTable, opts.Format)
	assert.Equal(t, "both", opts.Scope)

	_, err = readReportOptions(reportCommand(t, map[string]string{"format": "csv"}))
	assert.EqualError(t, err, "format must be one of: table, json, pdf, xlsx")
}

func TestReportIndividual_Table(t *testing.T) {
	cmd, stdout := testCmd()
	opts := reportOptions{From: "2024-05-05", To: "2024-05-06", Format: outputTable}

	require.NoError(t, runReportIndividual(context.Background(), cmd, &fakeReports{}, 1, opts))

	out := stdout.String()
	assert.Contains(t, out, "Attendance report: Ahmad (#1)")
	assert.Contains(t, out, "Check-in 1")
	assert.NotContains(t, out, "Check-in 2")
	assert.Contains(t, out, "08:10")
	assert.Contains(t, out, "Present: 1 days | Absent: 1 days | Total lateness: 10 minutes")
}

func TestReportIndividual_JSON(t *testing.T) {
	cmd, stdout := testCmd()
	opts := reportOptions{From: "2024-05-05", To: "2024-05-06", Format: outputJSON}

	require.NoError(t, runReportIndividual(context.Background(), cmd, &fakeReports{}, 1, opts))

	assert.Contains(t, stdout.String(), `"employee_name": "Ahmad"`)
	assert.Contains(t, stdout.String(), `"late_minutes": 10`)
}

func TestReportGeneral_XLSX(t *testing.T) {
	cmd, stdout := testCmd()
	svc := &fakeReports{general: report.GeneralReport{
		From:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Scope: report.ScopeBoth,
		Rows: []report.GeneralRow{
			{EmployeeID: 1, Name: "Ahmad", Present: 20, Absent: 2, LateTotal: 35},
			{EmployeeID: 2, Name: "Sara", Err: errors.New("timeout")},
		},
	}}
	path := filepath.Join(t.TempDir(), "general.xlsx")
	opts := reportOptions{From: "2024-05-01", To: "2024-05-31", Scope: "both", Format: outputXLSX, Out: path}

	require.NoError(t, runReportGeneral(context.Background(), cmd, svc, opts))

	assert.Equal(t, "2024-05-01", svc.req.From)
	assert.Equal(t, "both", svc.req.Scope)
	assert.Equal(t, "report written to "+path+"\n", stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

type fakeBackups struct {
	err error
}

func (f fakeBackups) Write(ctx context.Context, w io.Writer) (backup.Summary, error) {
	if _, err := io.WriteString(w, `{"format_version":1}`); err != nil {
		return backup.Summary{}, err
	}
	if f.err != nil {
		return backup.Summary{}, f.err
	}
	return backup.Summary{Employees: 2, Attendance: 31, Holidays: 1, Settings: 12}, nil
}

var backupTime = time.Date(2024, 5, 8, 17, 30, 0, 0, time.UTC)

func TestBackup_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd, stdout := testCmd()

	require.NoError(t, runBackup(context.Background(), cmd, fakeBackups{}, "", backupTime))

	path := filepath.Join("backups", "backup_20240508_1730.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"format_version":1}`, string(raw))
	assert.Contains(t, stdout.String(), "backup written to "+path)
	assert.Contains(t, stdout.String(), "31")
}

func TestBackup_OutDirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	cmd, _ := testCmd()

	require.NoError(t, runBackup(context.Background(), cmd, fakeBackups{}, dir, backupTime))
	assert.FileExists(t, filepath.Join(dir, "backup_20240508_1730.json"))

	file := filepath.Join(dir, "nested", "copy.json")
	require.NoError(t, runBackup(context.Background(), cmd, fakeBackups{}, file, backupTime))
	assert.FileExists(t, file)
}

func TestBackup_Stdout(t *testing.T) {
	cmd, stdout := testCmd()

	require.NoError(t, runBackup(context.Background(), cmd, fakeBackups{}, "-", backupTime))

	assert.JSONEq(t, `{"format_version":1}`, stdout.String())
}

func TestBackup_FailureRemovesPartialFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.json")
	cmd, _ := testCmd()

	err := runBackup(context.Background(), cmd, fakeBackups{err: errors.New("connection reset")}, file, backupTime)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoFileExists(t, file)
}
