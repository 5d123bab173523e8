package dashboard

import (
	"context"
	"time"
)

type Counts struct {
	TotalEmployees  int64
	ActiveEmployees int64
	PresentOn       int64
	TotalRecords    int64
	LastSync        *time.Time
}

type DashboardRepository interface {
	// Counts gathers the totals; PresentOn counts employees with any check-in on date.
	Counts(ctx context.Context, date time.Time) (Counts, error)
}
