package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	Get(ctx context.Context, fingerID int) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, fingerID int, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Delete removes the employee and every attendance record they own.
	Delete(ctx context.Context, fingerID int) error
}
