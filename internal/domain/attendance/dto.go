package attendance

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Registered   bool    `json:"registered"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	CheckIn2     *string `json:"check_in_2"`
	CheckOut2    *string `json:"check_out_2"`
	UpdatedAt    string  `json:"updated_at"`
}

// UnregisteredName labels records whose finger id has no employee.
const UnregisteredName = "unregistered"

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	name := UnregisteredName
	if a.EmployeeName != nil {
		name = *a.EmployeeName
	}
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: name,
		Registered:   a.EmployeeName != nil,
		Date:         a.Date.Format(validator.DateLayout),
		CheckIn:      a.CheckIn.Ptr(),
		CheckOut:     a.CheckOut.Ptr(),
		CheckIn2:     a.CheckIn2.Ptr(),
		CheckOut2:    a.CheckOut2.Ptr(),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

type AttendanceFilter struct {
	EmployeeID *int    `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Parsed by Validate
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}

	if f.EmployeeID != nil && *f.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a positive number",
		})
	}

	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			f.From = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			f.To = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset is the row offset of the requested page.
func (f AttendanceFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// SyncResult counts what happened to each fetched device record.
type SyncResult struct {
	RunID        string `json:"run_id"`
	Fetched      int    `json:"fetched"`
	Applied      int    `json:"applied"`
	Duplicates   int    `json:"duplicates"`
	Dropped      int    `json:"dropped"`
	Unregistered int    `json:"unregistered"`
	Invalid      int    `json:"invalid"`
}

type SyncRunResponse struct {
	ID           string  `json:"id"`
	StartedAt    string  `json:"started_at"`
	FinishedAt   *string `json:"finished_at"`
	Device       string  `json:"device"`
	Fetched      int     `json:"fetched"`
	Applied      int     `json:"applied"`
	Duplicates   int     `json:"duplicates"`
	Dropped      int     `json:"dropped"`
	Unregistered int     `json:"unregistered"`
	Invalid      int     `json:"invalid"`
	Status       string  `json:"status"`
	Error        *string `json:"error,omitempty"`
}

func NewSyncRunResponse(r SyncRun) SyncRunResponse {
	resp := SyncRunResponse{
		ID:           r.ID.String(),
		StartedAt:    r.StartedAt.Format(time.RFC3339),
		Device:       r.Device,
		Fetched:      r.Fetched,
		Applied:      r.Applied,
		Duplicates:   r.Duplicates,
		Dropped:      r.Dropped,
		Unregistered: r.Unregistered,
		Invalid:      r.Invalid,
		Status:       r.Status,
		Error:        r.Error,
	}
	if r.FinishedAt != nil {
		s := r.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &s
	}
	return resp
}
