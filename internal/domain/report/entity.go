package report

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// Scope selects which periods count toward presence and lateness.
type Scope string

const (
	ScopeFirst  Scope = "first"
	ScopeSecond Scope = "second"
	ScopeBoth   Scope = "both"
)

func (s Scope) Valid() bool {
	return s == ScopeFirst || s == ScopeSecond || s == ScopeBoth
}

func (s Scope) IncludesFirst() bool  { return s == ScopeFirst || s == ScopeBoth }
func (s Scope) IncludesSecond() bool { return s == ScopeSecond || s == ScopeBoth }

type DayStatus string

const (
	DayWorkday DayStatus = "workday"
	DayHoliday DayStatus = "holiday"
	DayWeekend DayStatus = "weekend"
)

// DayRow is one date of an individual report. Check-ins and lateness outside
// the selected scope are left empty and zero.
type DayRow struct {
	Date      time.Time
	Status    DayStatus
	CheckIn1  clock.NullTime
	Late1     int
	CheckIn2  clock.NullTime
	Late2     int
	LateTotal int
	Present   bool
}

type Summary struct {
	Present     int
	Absent      int
	LateMinutes int
}

type IndividualReport struct {
	EmployeeID   int
	EmployeeName string
	From         time.Time
	To           time.Time
	Scope        Scope
	Rows         []DayRow
	Summary      Summary
}

// GeneralRow holds one employee's totals. Err is set when that employee's
// data could not be loaded; the other rows are unaffected.
type GeneralRow struct {
	EmployeeID int
	Name       string
	Present    int
	Absent     int
	LateFirst  int
	LateSecond int
	LateTotal  int
	Err        error
}

type GeneralReport struct {
	From  time.Time
	To    time.Time
	Scope Scope
	Rows  []GeneralRow
}

// Format is an export rendering of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)
