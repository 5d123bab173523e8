// Package app wires repositories, the device connector and services for the
// API server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/config"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/backup"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/dashboard"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/logger"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/zkteco"
	"github.com/watan-hr/fingerprint-attendance/internal/repository/postgresql"
	attendanceService "github.com/watan-hr/fingerprint-attendance/internal/service/attendance"
	backupService "github.com/watan-hr/fingerprint-attendance/internal/service/backup"
	dashboardService "github.com/watan-hr/fingerprint-attendance/internal/service/dashboard"
	employeeService "github.com/watan-hr/fingerprint-attendance/internal/service/employee"
	holidayService "github.com/watan-hr/fingerprint-attendance/internal/service/holiday"
	reportService "github.com/watan-hr/fingerprint-attendance/internal/service/report"
	settingsService "github.com/watan-hr/fingerprint-attendance/internal/service/settings"
)

const Name = "fingerprint-attendance"

// Version is set at build time with -ldflags.
var Version = "dev"

// Services is everything an entry point needs to serve attendance operations.
type Services struct {
	Settings   settings.SettingsService
	Attendance attendance.AttendanceService
	Employee   employee.EmployeeService
	Holiday    holiday.HolidayService
	Report     report.ReportService
	Dashboard  dashboard.DashboardService
	Backup     backup.BackupService
}

// App owns the process-wide resources. Close releases them.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *database.DB
	Services Services

	logCloser io.Closer
}

// NewLogger builds the process logger from cfg and installs it as the slog default.
func NewLogger(cfg *config.Config, stdout io.Writer) (*slog.Logger, io.Closer) {
	log, closer := logger.New(logger.Options{
		App:        Name,
		Version:    Version,
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}, stdout)
	slog.SetDefault(log)
	return log, closer
}

// New connects to the store, applies the schema and builds the services.
func New(ctx context.Context, cfg *config.Config, stdout io.Writer) (*App, error) {
	log, closer := NewLogger(cfg, stdout)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		closer.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Services:  NewServices(db, zkteco.NewConnector(zkteco.WithLocation(time.Local)), log),
		logCloser: closer,
	}, nil
}

// NewServices builds the service graph over db and the given terminal connector.
func NewServices(db *database.DB, connector *zkteco.Connector, log *slog.Logger) Services {
	tx := postgresql.NewTxManager(db)

	settingsRepo := postgresql.NewSettingsRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	syncRunRepo := postgresql.NewSyncRunRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	settingsSvc := settingsService.NewSettingsService(settingsRepo, tx, log)

	return Services{
		Settings: settingsSvc,
		Attendance: attendanceService.NewAttendanceService(
			tx,
			connector,
			settingsSvc,
			attendanceRepo,
			syncRunRepo,
			employeeRepo,
			log,
		),
		Employee:  employeeService.NewEmployeeService(tx, employeeRepo, attendanceRepo, log),
		Holiday:   holidayService.NewHolidayService(holidayRepo, log),
		Report:    reportService.NewReportService(settingsSvc, attendanceRepo, employeeRepo, holidayRepo, log),
		Dashboard: dashboardService.NewDashboardService(dashboardRepo),
		Backup: backupService.NewBackupService(
			postgresql.NewSnapshotReader(db),
			postgresql.NewBackupRepository(db),
			employeeRepo,
			holidayRepo,
			settingsRepo,
			log,
		),
	}
}

func (a *App) Close() {
	a.DB.Close()
	if err := a.logCloser.Close(); err != nil {
		a.Logger.Warn("close log file", "error", err)
	}
}
