package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/employee"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
)

// likeEscaper quotes LIKE wildcards so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByFingerID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByFingerID(ctx context.Context, fingerID int) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT finger_id, name, active, created_at, updated_at
		FROM employees
		WHERE finger_id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, fingerID).Scan(&emp.FingerID, &emp.Name, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", fingerID, err)
	}
	return emp, nil
}

// ExistingIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistingIDs(ctx context.Context, ids []int) (map[int]struct{}, error) {
	found := make(map[int]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT finger_id FROM employees WHERE finger_id = ANY($1::int[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	return found, rows.Err()
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT finger_id, name, active, created_at, updated_at
		FROM employees
		WHERE (NOT $1 OR active)
		  AND ($2::text IS NULL OR name ILIKE $3 OR finger_id::text = $2)
		ORDER BY name ASC, finger_id ASC
	`

	var search, pattern *string
	if filter.Search != "" {
		p := "%" + likeEscaper.Replace(filter.Search) + "%"
		search, pattern = &filter.Search, &p
	}

	rows, err := q.Query(ctx, query, filter.ActiveOnly, search, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.FingerID, &emp.Name, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (finger_id, name, active)
		VALUES ($1, $2, $3)
		RETURNING finger_id, name, active, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query, newEmployee.FingerID, newEmployee.Name, newEmployee.Active).
		Scan(&created.FingerID, &created.Name, &created.Active, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrFingerIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = $2, active = $3, updated_at = NOW()
		WHERE finger_id = $1
		RETURNING finger_id, name, active, created_at, updated_at
	`

	var updated employee.Employee
	err := q.QueryRow(ctx, query, emp.FingerID, emp.Name, emp.Active).
		Scan(&updated.FingerID, &updated.Name, &updated.Active, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %d: %w", emp.FingerID, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, fingerID int) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE finger_id = $1`, fingerID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", fingerID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
