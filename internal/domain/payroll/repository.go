package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	DeleteByPeriod(ctx context.Context, periodID string) error
	ListByPeriod(ctx context.Context, periodID string) ([]PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID, periodID string) (PayrollRecord, error)
}

// TransactionBoundary runs fn atomically. Generation deletes a period's
// records before re-inserting them, so a failed run must never leave a
// mixture of old and new rows behind; the engine assumes this guarantee
// rather than implementing it.
type TransactionBoundary interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}
