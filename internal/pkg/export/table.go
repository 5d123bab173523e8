// Package export renders attendance reports as tables, PDF documents and
// Excel workbooks. Every renderer works from the same Table so the three
// outputs always agree.
package export

import (
	"fmt"
	"strconv"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

// Table is a rendered report: a title block, a header row, body rows and an
// optional summary line.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
	Summary  string
}

const (
	statusPresent = "Present"
	statusAbsent  = "Absent"
	statusHoliday = "Holiday"
	statusWeekend = "Weekend"
)

// DayStatusLabel is the human label of a report row.
func DayStatusLabel(r report.DayRow) string {
	switch r.Status {
	case report.DayHoliday:
		return statusHoliday
	case report.DayWeekend:
		return statusWeekend
	}
	if r.Present {
		return statusPresent
	}
	return statusAbsent
}

// IndividualTable lays out an individual report. Period columns outside the
// report scope are omitted.
func IndividualTable(rep report.IndividualReport) Table {
	headers := []string{"Date", "Day"}
	if rep.Scope.IncludesFirst() {
		headers = append(headers, "Check-in 1", "Late 1")
	}
	if rep.Scope.IncludesSecond() {
		headers = append(headers, "Check-in 2", "Late 2")
	}
	headers = append(headers, "Late total", "Status")

	rows := make([][]string, 0, len(rep.Rows))
	for _, d := range rep.Rows {
		row := []string{d.Date.Format(validator.DateLayout), d.Date.Weekday().String()}
		if rep.Scope.IncludesFirst() {
			row = append(row, d.CheckIn1.String(), strconv.Itoa(d.Late1))
		}
		if rep.Scope.IncludesSecond() {
			row = append(row, d.CheckIn2.String(), strconv.Itoa(d.Late2))
		}
		row = append(row, strconv.Itoa(d.LateTotal), DayStatusLabel(d))
		rows = append(rows, row)
	}

	return Table{
		Title:    fmt.Sprintf("Attendance report: %s (#%d)", rep.EmployeeName, rep.EmployeeID),
		Subtitle: rangeLabel(rep.From.Format(validator.DateLayout), rep.To.Format(validator.DateLayout), rep.Scope),
		Headers:  headers,
		Rows:     rows,
		Summary: fmt.Sprintf("Present: %d days | Absent: %d days | Total lateness: %d minutes",
			rep.Summary.Present, rep.Summary.Absent, rep.Summary.LateMinutes),
	}
}

// GeneralTable lays out a general report, one row per employee. A row whose
// data failed to load shows the failure instead of totals.
func GeneralTable(rep report.GeneralReport) Table {
	headers := []string{"ID", "Name", "Present", "Absent"}
	if rep.Scope.IncludesFirst() {
		headers = append(headers, "Late 1")
	}
	if rep.Scope.IncludesSecond() {
		headers = append(headers, "Late 2")
	}
	headers = append(headers, "Late total")

	rows := make([][]string, 0, len(rep.Rows))
	for _, g := range rep.Rows {
		row := []string{strconv.Itoa(g.EmployeeID), g.Name}
		if g.Err != nil {
			for len(row) < len(headers)-1 {
				row = append(row, clock.Placeholder)
			}
			rows = append(rows, append(row, "error: "+g.Err.Error()))
			continue
		}
		row = append(row, strconv.Itoa(g.Present), strconv.Itoa(g.Absent))
		if rep.Scope.IncludesFirst() {
			row = append(row, strconv.Itoa(g.LateFirst))
		}
		if rep.Scope.IncludesSecond() {
			row = append(row, strconv.Itoa(g.LateSecond))
		}
		rows = append(rows, append(row, strconv.Itoa(g.LateTotal)))
	}

	return Table{
		Title:    "General attendance report",
		Subtitle: rangeLabel(rep.From.Format(validator.DateLayout), rep.To.Format(validator.DateLayout), rep.Scope),
		Headers:  headers,
		Rows:     rows,
		Summary:  fmt.Sprintf("Employees: %d", len(rep.Rows)),
	}
}

func rangeLabel(from, to string, scope report.Scope) string {
	return fmt.Sprintf("%s to %s, periods: %s", from, to, scope)
}
