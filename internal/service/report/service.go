package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

// generalConcurrency bounds parallel per-employee loads in general reports.
const generalConcurrency = 4

type ReportServiceImpl struct {
	settings    settings.SettingsService
	attendance  attendance.AttendanceRepository
	employees   employee.EmployeeRepository
	holidayRepo holiday.HolidayRepository
	logger      *slog.Logger
}

func NewReportService(
	settingsService settings.SettingsService,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	logger *slog.Logger,
) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		settings:    settingsService,
		attendance:  attendanceRepo,
		employees:   employeeRepo,
		holidayRepo: holidayRepo,
		logger:      logger.With("component", "report"),
	}
}

func (s *ReportServiceImpl) calendar(ctx context.Context, from, to time.Time) (Calendar, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return Calendar{}, err
	}
	days, err := s.holidayRepo.Between(ctx, from, to)
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	holidays := make(map[time.Time]struct{}, len(days))
	for _, h := range days {
		holidays[clock.DateOf(h.Date)] = struct{}{}
	}
	return Calendar{Settings: cfg, Holidays: holidays}, nil
}

// Individual implements report.ReportService.
func (s *ReportServiceImpl) Individual(ctx context.Context, req report.IndividualReportRequest) (report.IndividualReport, error) {
	if err := req.Validate(); err != nil {
		return report.IndividualReport{}, err
	}

	emp, err := s.employees.GetByFingerID(ctx, req.EmployeeID)
	if err != nil {
		return report.IndividualReport{}, err
	}
	cal, err := s.calendar(ctx, req.FromDate, req.ToDate)
	if err != nil {
		return report.IndividualReport{}, err
	}
	records, err := s.attendance.ListByEmployeeBetween(ctx, emp.FingerID, req.FromDate, req.ToDate)
	if err != nil {
		return report.IndividualReport{}, fmt.Errorf("failed to load attendance of employee %d: %w", emp.FingerID, err)
	}

	scope := report.Scope(req.Scope)
	rows, summary := Walk(cal, scope, req.FromDate, req.ToDate, records)
	return report.IndividualReport{
		EmployeeID:   emp.FingerID,
		EmployeeName: emp.Name,
		From:         req.FromDate,
		To:           req.ToDate,
		Scope:        scope,
		Rows:         rows,
		Summary:      summary,
	}, nil
}

// General implements report.ReportService. A failure for one employee is
// recorded on that row; the report still covers everyone else.
func (s *ReportServiceImpl) General(ctx context.Context, req report.GeneralReportRequest) (report.GeneralReport, error) {
	if err := req.Validate(); err != nil {
		return report.GeneralReport{}, err
	}

	cal, err := s.calendar(ctx, req.FromDate, req.ToDate)
	if err != nil {
		return report.GeneralReport{}, err
	}
	employees, err := s.employees.List(ctx, employee.EmployeeFilter{ActiveOnly: true})
	if err != nil {
		return report.GeneralReport{}, err
	}

	scope := report.Scope(req.Scope)
	rows := make([]report.GeneralRow, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generalConcurrency)
	for i, emp := range employees {
		g.Go(func() error {
			row := report.GeneralRow{EmployeeID: emp.FingerID, Name: emp.Name}
			records, err := s.attendance.ListByEmployeeBetween(gctx, emp.FingerID, req.FromDate, req.ToDate)
			if err != nil {
				s.logger.Error("Failed to load attendance for general report",
					"employee_id", emp.FingerID,
					"error", err,
				)
				row.Err = fmt.Errorf("failed to load attendance: %w", err)
				rows[i] = row
				return nil
			}

			dayRows, _ := Walk(cal, scope, req.FromDate, req.ToDate, records)
			totals := Totals(dayRows)
			totals.EmployeeID, totals.Name = row.EmployeeID, row.Name
			rows[i] = totals
			return nil
		})
	}
	_ = g.Wait()

	return report.GeneralReport{
		From:  req.FromDate,
		To:    req.ToDate,
		Scope: scope,
		Rows:  rows,
	}, nil
}
