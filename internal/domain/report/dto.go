package report

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type IndividualReportRequest struct {
	EmployeeID int    `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Scope      string `json:"scope"`

	// Parsed by Validate
	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *IndividualReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a positive number",
		})
	}
	errs = append(errs, validateRange(r.From, r.To, &r.Scope, &r.FromDate, &r.ToDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneralReportRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Scope string `json:"scope"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *GeneralReportRequest) Validate() error {
	errs := validateRange(r.From, r.To, &r.Scope, &r.FromDate, &r.ToDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRange(from, to string, scope *string, fromDate, toDate *time.Time) validator.ValidationErrors {
	var errs validator.ValidationErrors

	var fromOK, toOK bool
	*fromDate, fromOK = validator.IsValidDate(from)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	*toDate, toOK = validator.IsValidDate(to)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && toDate.Before(*fromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if *scope == "" {
		*scope = string(ScopeBoth)
	}
	if !Scope(*scope).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: ErrInvalidScope.Error(),
		})
	}
	return errs
}

// ParseFormat defaults to json.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatPDF, FormatXLSX:
		return Format(s), nil
	}
	return "", ErrInvalidFormat
}

// ========================================
// RESPONSES
// ========================================

type DayRowResponse struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	Status    string  `json:"status"`
	CheckIn1  *string `json:"check_in_1,omitempty"`
	Late1     int     `json:"late_1"`
	CheckIn2  *string `json:"check_in_2,omitempty"`
	Late2     int     `json:"late_2"`
	LateTotal int     `json:"late_total"`
	Present   bool    `json:"present"`
}

type SummaryResponse struct {
	Present     int `json:"present"`
	Absent      int `json:"absent"`
	LateMinutes int `json:"late_minutes"`
}

type IndividualReportResponse struct {
	EmployeeID   int              `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	From         string           `json:"from"`
	To           string           `json:"to"`
	Scope        string           `json:"scope"`
	Rows         []DayRowResponse `json:"rows"`
	Summary      SummaryResponse  `json:"summary"`
}

func NewIndividualReportResponse(r IndividualReport) IndividualReportResponse {
	rows := make([]DayRowResponse, 0, len(r.Rows))
	for _, d := range r.Rows {
		rows = append(rows, DayRowResponse{
			Date:      d.Date.Format(validator.DateLayout),
			Weekday:   d.Date.Weekday().String(),
			Status:    string(d.Status),
			CheckIn1:  d.CheckIn1.Ptr(),
			Late1:     d.Late1,
			CheckIn2:  d.CheckIn2.Ptr(),
			Late2:     d.Late2,
			LateTotal: d.LateTotal,
			Present:   d.Present,
		})
	}
	return IndividualReportResponse{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		From:         r.From.Format(validator.DateLayout),
		To:           r.To.Format(validator.DateLayout),
		Scope:        string(r.Scope),
		Rows:         rows,
		Summary: SummaryResponse{
			Present:     r.Summary.Present,
			Absent:      r.Summary.Absent,
			LateMinutes: r.Summary.LateMinutes,
		},
	}
}

type GeneralRowResponse struct {
	EmployeeID int     `json:"employee_id"`
	Name       string  `json:"name"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	LateFirst  int     `json:"late_first"`
	LateSecond int     `json:"late_second"`
	LateTotal  int     `json:"late_total"`
	Error      *string `json:"error,omitempty"`
}

type GeneralReportResponse struct {
	From  string               `json:"from"`
	To    string               `json:"to"`
	Scope string               `json:"scope"`
	Rows  []GeneralRowResponse `json:"rows"`
}

func NewGeneralReportResponse(r GeneralReport) GeneralReportResponse {
	rows := make([]GeneralRowResponse, 0, len(r.Rows))
	for _, g := range r.Rows {
		row := GeneralRowResponse{
			EmployeeID: g.EmployeeID,
			Name:       g.Name,
			Present:    g.Present,
			Absent:     g.Absent,
			LateFirst:  g.LateFirst,
			LateSecond: g.LateSecond,
			LateTotal:  g.LateTotal,
		}
		if g.Err != nil {
			msg := g.Err.Error()
			row.Error = &msg
		}
		rows = append(rows, row)
	}
	return GeneralReportResponse{
		From:  r.From.Format(validator.DateLayout),
		To:    r.To.Format(validator.DateLayout),
		Scope: string(r.Scope),
		Rows:  rows,
	}
}
