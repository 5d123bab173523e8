package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"github.com/xuri/excelize/v2"
)

func individual(scope report.Scope) report.IndividualReport {
	d := func(day int) time.Time { return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC) }
	return report.IndividualReport{
		EmployeeID:   1,
		EmployeeName: "Ahmad",
		From:         d(5),
		To:           d(7),
		Scope:        scope,
		Rows: []report.DayRow{
			{Date: d(5), Status: report.DayWorkday, CheckIn1: clock.Some(clock.New(8, 10)), Late1: 10, LateTotal: 10, Present: true},
			{Date: d(6), Status: report.DayWorkday},
			{Date: d(7), Status: report.DayHoliday},
		},
		Summary: report.Summary{Present: 1, Absent: 1, LateMinutes: 10},
	}
}

func general() report.GeneralReport {
	return report.GeneralReport{
		From:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Scope: report.ScopeBoth,
		Rows: []report.GeneralRow{
			{EmployeeID: 1, Name: "Ahmad", Present: 20, Absent: 2, LateFirst: 30, LateSecond: 5, LateTotal: 35},
			{EmployeeID: 2, Name: "Sara", Err: errors.New("timeout")},
		},
	}
}

func TestIndividualTable(t *testing.T) {
	tbl := IndividualTable(individual(report.ScopeBoth))

	assert.Equal(t, []string{"Date", "Day", "Check-in 1", "Late 1", "Check-in 2", "Late 2", "Late total", "Status"}, tbl.Headers)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"2024-05-05", "Sunday", "08:10", "10", "--", "0", "10", "Present"}, tbl.Rows[0])
	assert.Equal(t, "Absent", tbl.Rows[1][7])
	assert.Equal(t, "Holiday", tbl.Rows[2][7])
	assert.Contains(t, tbl.Summary, "Total lateness: 10 minutes")
}

func TestIndividualTable_ScopeColumns(t *testing.T) {
	first := IndividualTable(individual(report.ScopeFirst))
	second := IndividualTable(individual(report.ScopeSecond))

	assert.Equal(t, []string{"Date", "Day", "Check-in 1", "Late 1", "Late total", "Status"}, first.Headers)
	assert.Equal(t, []string{"Date", "Day", "Check-in 2", "Late 2", "Late total", "Status"}, second.Headers)
	for _, row := range first.Rows {
		assert.Len(t, row, len(first.Headers))
	}
}

func TestGeneralTable(t *testing.T) {
	tbl := GeneralTable(general())

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1", "Ahmad", "20", "2", "30", "5", "35"}, tbl.Rows[0])
	assert.Len(t, tbl.Rows[1], len(tbl.Headers))
	assert.Equal(t, "error: timeout", tbl.Rows[1][len(tbl.Headers)-1])
}

func TestColumnWidths(t *testing.T) {
	cases := map[int][]int{
		1: {12},
		5: {3, 3, 2, 2, 2},
		6: {2, 2, 2, 2, 2, 2},
		8: {2, 2, 2, 2, 1, 1, 1, 1},
	}
	for n, want := range cases {
		got := columnWidths(n)
		assert.Equal(t, want, got)
		sum := 0
		for _, w := range got {
			sum += w
		}
		assert.Equal(t, gridSize, sum)
	}
	assert.Nil(t, columnWidths(0))
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, IndividualTable(individual(report.ScopeBoth))))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance report: Ahmad (#1)", title)

	header, err := f.GetCellValue(SheetName, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Check-in 1", header)

	late, err := f.GetCellValue(SheetName, "D5")
	require.NoError(t, err)
	assert.Equal(t, "10", late)

	status, err := f.GetCellValue(SheetName, "H7")
	require.NoError(t, err)
	assert.Equal(t, "Holiday", status)
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	err := PDF(&buf, GeneralTable(general()), Options{
		Organization: "Watan",
		GeneratedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
