package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/dashboard"
)

type fakeRepo struct {
	counts dashboard.Counts
	err    error
	asked  time.Time
}

func (f *fakeRepo) Counts(ctx context.Context, date time.Time) (dashboard.Counts, error) {
	f.asked = date
	return f.counts, f.err
}

func TestGetDashboard(t *testing.T) {
	synced := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	repo := &fakeRepo{counts: dashboard.Counts{
		TotalEmployees:  12,
		ActiveEmployees: 10,
		PresentOn:       7,
		TotalRecords:    340,
		LastSync:        &synced,
	}}
	svc := &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 func() time.Time { return time.Date(2024, 5, 2, 15, 4, 0, 0, time.UTC) },
	}

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", resp.Date)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), repo.asked)
	assert.Equal(t, int64(7), resp.PresentToday)
	assert.Equal(t, int64(340), resp.TotalRecords)
	require.NotNil(t, resp.LastSync)
	assert.Equal(t, "2024-05-02T09:30:00Z", *resp.LastSync)
}

func TestGetDashboard_NeverSynced(t *testing.T) {
	svc := NewDashboardService(&fakeRepo{})

	resp, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Nil(t, resp.LastSync)
}

func TestGetDashboard_Error(t *testing.T) {
	boom := errors.New("db down")
	svc := NewDashboardService(&fakeRepo{err: boom})

	_, err := svc.GetDashboard(context.Background())

	assert.ErrorIs(t, err, boom)
}
