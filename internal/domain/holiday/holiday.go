// Package holiday holds the set of dates treated as non-working days.
package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

var (
	ErrHolidayExists   = errors.New("holiday already exists")
	ErrHolidayNotFound = errors.New("holiday not found")
)

type Holiday struct {
	Date time.Time
}

type HolidayResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		Date:    h.Date.Format(validator.DateLayout),
		Weekday: h.Date.Weekday().String(),
	}
}

type CreateHolidayRequest struct {
	Date string    `json:"date"`
	Day  time.Time `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.Day = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayRepository interface {
	// Between returns holidays in the inclusive range, ascending.
	Between(ctx context.Context, from, to time.Time) ([]Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, date time.Time) error
}

type HolidayService interface {
	List(ctx context.Context) ([]HolidayResponse, error)
	Add(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Remove(ctx context.Context, date string) error
}
