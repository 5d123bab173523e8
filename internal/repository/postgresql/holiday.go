package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Between implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Between(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return h.query(ctx, `SELECT holiday_date FROM holidays WHERE holiday_date BETWEEN $1 AND $2 ORDER BY holiday_date`, from, to)
}

// List implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	return h.query(ctx, `SELECT holiday_date FROM holidays ORDER BY holiday_date`)
}

func (h *holidayRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var d holiday.Holiday
		if err := rows.Scan(&d.Date); err != nil {
			return nil, err
		}
		holidays = append(holidays, d)
	}
	return holidays, rows.Err()
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Create(ctx context.Context, d holiday.Holiday) error {
	q := GetQuerier(ctx, h.db)

	if _, err := q.Exec(ctx, `INSERT INTO holidays (holiday_date) VALUES ($1)`, d.Date); err != nil {
		if isUniqueViolation(err) {
			return holiday.ErrHolidayExists
		}
		return fmt.Errorf("failed to create holiday: %w", err)
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Delete(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE holiday_date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
