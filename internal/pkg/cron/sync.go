package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
)

// DeviceSyncJobs pulls the terminal's log on a fixed interval.
type DeviceSyncJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
	logger            *slog.Logger
}

func NewDeviceSyncJobs(attendanceService attendance.AttendanceService, interval time.Duration, logger *slog.Logger) *DeviceSyncJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeviceSyncJobs{
		attendanceService: attendanceService,
		interval:          interval,
		logger:            logger,
	}
}

func (j *DeviceSyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{Name: "device_sync", Interval: j.interval, Fn: j.Sync})
}

// Sync runs one synchronization. A sync already started by an operator is
// not an error.
func (j *DeviceSyncJobs) Sync(ctx context.Context) error {
	result, err := j.attendanceService.Sync(ctx)
	if errors.Is(err, attendance.ErrSyncInProgress) {
		j.logger.Info("Cron: device sync skipped, another sync is running")
		return nil
	}
	if err != nil {
		return err
	}

	j.logger.Info("Cron: device sync completed",
		"run_id", result.RunID,
		"fetched", result.Fetched,
		"applied", result.Applied,
		"unregistered", result.Unregistered,
	)
	return nil
}
