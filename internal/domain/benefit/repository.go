package benefit

import "context"

type BenefitRepository interface {
	ListByPosition(ctx context.Context, positionTitle string) ([]BenefitAssignment, error)
}
