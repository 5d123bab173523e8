package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

type BackupServiceImpl struct {
	snapshots   database.SnapshotReader
	backupRepo  backup.BackupRepository
	employees   employee.EmployeeRepository
	holidayRepo holiday.HolidayRepository
	settingRepo settings.SettingsRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewBackupService(
	snapshots database.SnapshotReader,
	backupRepo backup.BackupRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	settingsRepo settings.SettingsRepository,
	logger *slog.Logger,
) backup.BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupServiceImpl{
		snapshots:   snapshots,
		backupRepo:  backupRepo,
		employees:   employeeRepo,
		holidayRepo: holidayRepo,
		settingRepo: settingsRepo,
		logger:      logger.With("component", "backup"),
		now:         time.Now,
	}
}

// Write implements backup.BackupService. Every table is read inside one
// read-only transaction; encoding happens after it closes.
func (s *BackupServiceImpl) Write(ctx context.Context, w io.Writer) (backup.Summary, error) {
	snap := backup.Snapshot{
		FormatVersion: backup.FormatVersion,
		CreatedAt:     s.now().UTC(),
		Employees:     []backup.EmployeeRow{},
		Attendance:    []backup.AttendanceRow{},
		Holidays:      []string{},
	}

	err := s.snapshots.WithinSnapshot(ctx, func(ctx context.Context) error {
		employees, err := s.employees.List(ctx, employee.EmployeeFilter{})
		if err != nil {
			return err
		}
		for _, e := range employees {
			snap.Employees = append(snap.Employees, backup.EmployeeRow{
				FingerID:  e.FingerID,
				Name:      e.Name,
				Active:    e.Active,
				CreatedAt: e.CreatedAt,
				UpdatedAt: e.UpdatedAt,
			})
		}

		records, err := s.backupRepo.AllAttendance(ctx)
		if err != nil {
			return err
		}
		for _, r := range records {
			snap.Attendance = append(snap.Attendance, backup.AttendanceRow{
				EmployeeID: r.EmployeeID,
				Date:       r.Date.Format(validator.DateLayout),
				CheckIn:    r.CheckIn,
				CheckOut:   r.CheckOut,
				CheckIn2:   r.CheckIn2,
				CheckOut2:  r.CheckOut2,
				UpdatedAt:  r.UpdatedAt,
			})
		}

		holidays, err := s.holidayRepo.List(ctx)
		if err != nil {
			return err
		}
		for _, h := range holidays {
			snap.Holidays = append(snap.Holidays, h.Date.Format(validator.DateLayout))
		}

		snap.Settings, err = s.settingRepo.GetAll(ctx)
		return err
	})
	if err != nil {
		return backup.Summary{}, fmt.Errorf("failed to read store for backup: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return backup.Summary{}, fmt.Errorf("failed to write backup: %w", err)
	}

	summary := backup.Summary{
		CreatedAt:  snap.CreatedAt,
		Employees:  len(snap.Employees),
		Attendance: len(snap.Attendance),
		Holidays:   len(snap.Holidays),
		Settings:   len(snap.Settings),
	}
	s.logger.Info("Backup written",
		"employees", summary.Employees,
		"attendance", summary.Attendance,
		"holidays", summary.Holidays,
	)
	return summary, nil
}
