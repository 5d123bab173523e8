package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/dashboard"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// Counts returns every dashboard total in a single query
func (r *dashboardRepositoryImpl) Counts(ctx context.Context, date time.Time) (dashboard.Counts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM employees WHERE active),
			(SELECT COUNT(DISTINCT employee_id) FROM attendance
				WHERE date = $1 AND (check_in IS NOT NULL OR check_in_2 IS NOT NULL)),
			(SELECT COUNT(*) FROM attendance),
			(SELECT MAX(finished_at) FROM sync_runs WHERE status = 'success')
	`

	var c dashboard.Counts
	err := q.QueryRow(ctx, query, date).Scan(
		&c.TotalEmployees, &c.ActiveEmployees, &c.PresentOn, &c.TotalRecords, &c.LastSync,
	)
	if err != nil {
		return dashboard.Counts{}, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return c, nil
}
