package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	attendance   attendance.AttendanceRepository
	logger       *slog.Logger
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	logger *slog.Logger,
) employee.EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		attendance:   attendanceRepo,
		logger:       logger.With("component", "employee"),
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, fingerID int) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByFingerID(ctx, fingerID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FingerID: req.FingerID,
		Name:     req.Name,
		Active:   active,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("Employee registered", "finger_id", created.FingerID)
	return employee.NewEmployeeResponse(created), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, fingerID int, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByFingerID(ctx, fingerID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			current.Name = *req.Name
		}
		if req.Active != nil {
			current.Active = *req.Active
		}
		updated, err = s.employeeRepo.Update(ctx, current)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, fingerID int) error {
	var removed int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByFingerID(ctx, fingerID); err != nil {
			return err
		}
		n, err := s.attendance.DeleteByEmployee(ctx, fingerID)
		if err != nil {
			return err
		}
		removed = n
		return s.employeeRepo.Delete(ctx, fingerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Employee deleted", "finger_id", fingerID, "attendance_records", removed)
	return nil
}
