package deduction

import "context"

type DeductionRuleRepository interface {
	Create(ctx context.Context, rule DeductionRule) (DeductionRule, error)
	Delete(ctx context.Context, id string) error

	// ListByKind returns the bracket table for a kind ordered by ascending
	// lower bound (nil lower bound first). When periodID is non-nil and
	// period-scoped rows exist for that kind, only those rows are returned;
	// otherwise the master table is returned.
	ListByKind(ctx context.Context, kind Kind, periodID *string) ([]DeductionRule, error)

	ListAll(ctx context.Context) ([]DeductionRule, error)
}
