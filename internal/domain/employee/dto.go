package employee

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

type EmployeeResponse struct {
	FingerID  int    `json:"finger_id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		FingerID:  e.FingerID,
		Name:      e.Name,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateEmployeeRequest struct {
	FingerID int    `json:"finger_id"`
	Name     string `json:"name"`
	Active   *bool  `json:"active,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FingerID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "finger_id",
			Message: "finger_id must be a positive number",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest patches name and active flag. Nil fields are untouched.
type UpdateEmployeeRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Active == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of name or active is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeFilter narrows an employee listing. Search matches the name
// case-insensitively or the finger id exactly.
type EmployeeFilter struct {
	ActiveOnly bool
	Search     string
}
