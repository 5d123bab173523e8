package report

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// Calendar is what the day walk needs to know about non-working days.
type Calendar struct {
	Settings settings.Settings
	Holidays map[time.Time]struct{}
}

// Status classifies d. Holidays take precedence over weekends.
func (c Calendar) Status(d time.Time) report.DayStatus {
	if _, ok := c.Holidays[clock.DateOf(d)]; ok {
		return report.DayHoliday
	}
	if c.Settings.IsWeekend(d) {
		return report.DayWeekend
	}
	return report.DayWorkday
}

// Days returns every date of [from, to], both ends included. Dates are
// advanced with calendar arithmetic so month and year boundaries neither skip
// nor repeat a day.
func Days(from, to time.Time) []time.Time {
	from, to = clock.DateOf(from), clock.DateOf(to)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Walk builds one row per date of the range from the employee's records and
// the summary over workdays.
func Walk(cal Calendar, scope report.Scope, from, to time.Time, records []attendance.Attendance) ([]report.DayRow, report.Summary) {
	byDate := make(map[time.Time]attendance.Attendance, len(records))
	for _, r := range records {
		byDate[clock.DateOf(r.Date)] = r
	}

	var (
		rows    []report.DayRow
		summary report.Summary
	)
	for _, d := range Days(from, to) {
		row := report.DayRow{Date: d, Status: cal.Status(d)}
		if row.Status == report.DayWorkday {
			fillDay(&row, byDate[d], scope, cal.Settings)
			if row.Present {
				summary.Present++
				summary.LateMinutes += row.LateTotal
			} else {
				summary.Absent++
			}
		}
		rows = append(rows, row)
	}
	return rows, summary
}

// fillDay evaluates a workday. Lateness is measured from each period's start
// and counted only from periods with a check-in.
func fillDay(row *report.DayRow, rec attendance.Attendance, scope report.Scope, s settings.Settings) {
	if scope.IncludesFirst() && rec.CheckIn.Present() {
		row.CheckIn1 = rec.CheckIn
		row.Late1 = clock.Late(rec.CheckIn, s.First.Start)
		row.Present = true
	}
	if scope.IncludesSecond() && rec.CheckIn2.Present() {
		row.CheckIn2 = rec.CheckIn2
		row.Late2 = clock.Late(rec.CheckIn2, s.Second.Start)
		row.Present = true
	}
	if row.Present {
		row.LateTotal = row.Late1 + row.Late2
	}
}

// Totals reduces day rows to one general-report row.
func Totals(rows []report.DayRow) report.GeneralRow {
	var g report.GeneralRow
	for _, r := range rows {
		if r.Status != report.DayWorkday {
			continue
		}
		if !r.Present {
			g.Absent++
			continue
		}
		g.Present++
		g.LateFirst += r.Late1
		g.LateSecond += r.Late2
	}
	g.LateTotal = g.LateFirst + g.LateSecond
	return g
}
