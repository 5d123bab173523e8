package dashboard

import (
	"context"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/dashboard"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	today := clock.DateOf(s.now())

	c, err := s.DashboardRepository.Counts(ctx, today)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		TotalEmployees:  c.TotalEmployees,
		ActiveEmployees: c.ActiveEmployees,
		PresentToday:    c.PresentOn,
		TotalRecords:    c.TotalRecords,
		Date:            today.Format(validator.DateLayout),
	}
	if c.LastSync != nil {
		s := c.LastSync.Format(time.RFC3339)
		resp.LastSync = &s
	}
	return resp, nil
}
