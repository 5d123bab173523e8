package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/device"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx        database.Transactor
	connector device.Connector
	settings  settings.SettingsService
	attendance.AttendanceRepository
	attendance.SyncRunRepository
	employee.EmployeeRepository
	logger *slog.Logger
	now    func() time.Time

	// device guards every operation that talks to the terminal
	device sync.Mutex
}

func NewAttendanceService(
	tx database.Transactor,
	connector device.Connector,
	settingsService settings.SettingsService,
	attendanceRepository attendance.AttendanceRepository,
	syncRunRepository attendance.SyncRunRepository,
	employeeRepository employee.EmployeeRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		connector:            connector,
		settings:             settingsService,
		AttendanceRepository: attendanceRepository,
		SyncRunRepository:    syncRunRepository,
		EmployeeRepository:   employeeRepository,
		logger:               logger.With("component", "attendance"),
		now:                  time.Now,
	}
}

// Sync implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Sync(ctx context.Context) (attendance.SyncResult, error) {
	if !a.device.TryLock() {
		return attendance.SyncResult{}, attendance.ErrSyncInProgress
	}
	defer a.device.Unlock()

	cfg, err := a.settings.Load(ctx)
	if err != nil {
		return attendance.SyncResult{}, err
	}

	addr := net.JoinHostPort(cfg.Device.Address, strconv.Itoa(cfg.Device.Port))
	log := a.logger.With("device", addr)
	started := a.now().UTC()

	// an unreachable terminal is logged only and leaves no sync run behind
	sess, err := a.open(ctx, cfg, log)
	if err != nil {
		log.Error("Device sync failed to connect", "error", err)
		return attendance.SyncResult{}, err
	}
	defer sess.Close()

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.SyncResult{}, fmt.Errorf("failed to generate sync run id: %w", err)
	}
	run := attendance.SyncRun{
		ID:        id,
		StartedAt: started,
		Device:    addr,
		Status:    attendance.SyncStatusRunning,
	}
	if err := a.SyncRunRepository.Create(ctx, run); err != nil {
		return attendance.SyncResult{}, err
	}
	log = log.With("run_id", run.ID.String())
	log.Info("Device sync started")

	syncErr := a.syncDevice(ctx, sess, cfg, &run, log)

	finished := a.now().UTC()
	run.FinishedAt = &finished
	run.Status = attendance.SyncStatusSuccess
	if syncErr != nil {
		msg := syncErr.Error()
		run.Status = attendance.SyncStatusFailed
		run.Error = &msg
	}
	if err := a.SyncRunRepository.Finish(context.WithoutCancel(ctx), run); err != nil {
		log.Error("Failed to record sync run result", "error", err)
	}

	if syncErr != nil {
		log.Error("Device sync failed", "error", syncErr, "duration", finished.Sub(run.StartedAt))
		return attendance.SyncResult{}, syncErr
	}

	log.Info("Device sync finished",
		"fetched", run.Fetched,
		"applied", run.Applied,
		"duplicates", run.Duplicates,
		"dropped", run.Dropped,
		"unregistered", run.Unregistered,
		"invalid", run.Invalid,
		"duration", finished.Sub(run.StartedAt),
	)
	return attendance.SyncResult{
		RunID:        run.ID.String(),
		Fetched:      run.Fetched,
		Applied:      run.Applied,
		Duplicates:   run.Duplicates,
		Dropped:      run.Dropped,
		Unregistered: run.Unregistered,
		Invalid:      run.Invalid,
	}, nil
}

// syncDevice keeps the terminal disabled from before the fetch until the batch
// is committed. Re-enable always runs and its failure is logged only.
func (a *AttendanceServiceImpl) syncDevice(ctx context.Context, sess *closingSession, cfg settings.Settings, run *attendance.SyncRun, log *slog.Logger) error {
	defer func() {
		if err := sess.EnableDevice(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Failed to re-enable device", "error", err)
		}
	}()

	if err := sess.DisableDevice(ctx); err != nil {
		return err
	}
	records, err := sess.Punches(ctx)
	if err != nil {
		return err
	}
	run.Fetched = len(records)

	return a.commit(ctx, cfg, records, run, log)
}

func (a *AttendanceServiceImpl) open(ctx context.Context, cfg settings.Settings, log *slog.Logger) (*closingSession, error) {
	sess, err := a.connector.Connect(ctx, cfg.Device.Target())
	if err != nil {
		return nil, err
	}
	return &closingSession{Session: sess, log: log}, nil
}

// commit reconciles the batch and writes it in one transaction.
func (a *AttendanceServiceImpl) commit(ctx context.Context, cfg settings.Settings, records []device.Record, run *attendance.SyncRun, log *slog.Logger) error {
	punches := make([]attendance.Punch, 0, len(records))
	for _, r := range records {
		id, err := strconv.Atoi(r.UserID)
		if err != nil || id <= 0 {
			run.Invalid++
			log.Debug("Skipping punch with non-numeric user id", "user_id", r.UserID, "timestamp", r.Timestamp)
			continue
		}
		punches = append(punches, attendance.Punch{EmployeeID: id, Timestamp: r.Timestamp})
	}

	return a.tx.WithinTx(ctx, func(ctx context.Context) error {
		registered, err := a.EmployeeRepository.ExistingIDs(ctx, uniqueIDs(punches))
		if err != nil {
			return err
		}
		for _, p := range punches {
			if _, ok := registered[p.EmployeeID]; !ok {
				run.Unregistered++
			}
		}

		changed, tally, err := Reconcile(ctx, punches, cfg.First, cfg.Second, func(ctx context.Context, key attendance.Key) (*attendance.Attendance, error) {
			return a.AttendanceRepository.GetByEmployeeAndDate(ctx, key.EmployeeID, key.Date)
		})
		if err != nil {
			return err
		}
		for _, rec := range changed {
			if _, err := a.AttendanceRepository.Upsert(ctx, rec); err != nil {
				return err
			}
		}

		run.Applied = tally.Applied
		run.Duplicates = tally.Duplicates
		run.Dropped = tally.Dropped
		return nil
	})
}

// ClearDevice implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClearDevice(ctx context.Context) error {
	if !a.device.TryLock() {
		return attendance.ErrSyncInProgress
	}
	defer a.device.Unlock()

	cfg, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}
	log := a.logger.With("device", net.JoinHostPort(cfg.Device.Address, strconv.Itoa(cfg.Device.Port)))

	sess, err := a.open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.ClearAttendance(ctx); err != nil {
		return err
	}
	log.Warn("Device attendance log cleared")
	return nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewAttendanceResponse(r))
	}
	return resp, nil
}

// ListSyncRuns implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListSyncRuns(ctx context.Context, limit int) ([]attendance.SyncRunResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := a.SyncRunRepository.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.SyncRunResponse, 0, len(runs))
	for _, r := range runs {
		resp = append(resp, attendance.NewSyncRunResponse(r))
	}
	return resp, nil
}

func uniqueIDs(punches []attendance.Punch) []int {
	seen := make(map[int]struct{}, len(punches))
	ids := make([]int, 0, len(punches))
	for _, p := range punches {
		if _, ok := seen[p.EmployeeID]; !ok {
			seen[p.EmployeeID] = struct{}{}
			ids = append(ids, p.EmployeeID)
		}
	}
	return ids
}

// closingSession is a device session whose Close never fails the caller.
type closingSession struct {
	device.Session
	log *slog.Logger
}

func (s *closingSession) Close() {
	if err := s.Disconnect(); err != nil {
		s.log.Warn("Failed to disconnect from device", "error", err)
	}
}
