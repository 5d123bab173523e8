package employee

import "context"

type EmployeeRepository interface {
	GetByFingerID(ctx context.Context, fingerID int) (Employee, error)
	// ExistingIDs returns the subset of ids that are registered.
	ExistingIDs(ctx context.Context, ids []int) (map[int]struct{}, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	// Delete removes the employee only; callers cascade attendance in the same transaction.
	Delete(ctx context.Context, fingerID int) error
}
