package employee

import "context"

// EmployeeRepository is the read-only view of the employee directory the
// engine consumes during a computation.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	GetActiveByIDs(ctx context.Context, ids []string) ([]Employee, error)
}
