package period

import "context"

type PeriodRepository interface {
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)
	GetByID(ctx context.Context, id string) (PayPeriod, error)
	List(ctx context.Context) ([]PayPeriod, error)
}
