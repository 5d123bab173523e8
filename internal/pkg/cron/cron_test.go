package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestScheduler_RunsOnInterval(t *testing.T) {
	s := NewScheduler(quiet)
	var runs atomic.Int32
	s.AddJob(Job{Name: "tick", Interval: 10 * time.Millisecond, Immediate: true, Fn: func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_IgnoresDisabledJob(t *testing.T) {
	s := NewScheduler(quiet)
	s.AddJob(Job{Name: "off", Interval: 0, Fn: func(ctx context.Context) error {
		t.Fatal("disabled job ran")
		return nil
	}})

	s.RunOnce(context.Background())
	assert.Empty(t, s.jobs)
}

type stubAttendanceService struct {
	attendance.AttendanceService
	result attendance.SyncResult
	err    error
	calls  int
}

func (s *stubAttendanceService) Sync(ctx context.Context) (attendance.SyncResult, error) {
	s.calls++
	return s.result, s.err
}

func TestDeviceSyncJobs_Sync(t *testing.T) {
	t.Run("in progress is skipped", func(t *testing.T) {
		svc := &stubAttendanceService{err: attendance.ErrSyncInProgress}
		j := NewDeviceSyncJobs(svc, time.Minute, quiet)

		assert.NoError(t, j.Sync(context.Background()))
		assert.Equal(t, 1, svc.calls)
	})

	t.Run("failure is returned", func(t *testing.T) {
		boom := errors.New("boom")
		j := NewDeviceSyncJobs(&stubAttendanceService{err: boom}, time.Minute, quiet)

		assert.ErrorIs(t, j.Sync(context.Background()), boom)
	})

	t.Run("registers under its name", func(t *testing.T) {
		s := NewScheduler(quiet)
		svc := &stubAttendanceService{result: attendance.SyncResult{Fetched: 2}}
		NewDeviceSyncJobs(svc, time.Minute, quiet).RegisterJobs(s)

		require.Len(t, s.jobs, 1)
		assert.Equal(t, "device_sync", s.jobs[0].Name)
		s.RunOnce(context.Background())
		assert.Equal(t, 1, svc.calls)
	})
}
