package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type benefitRepositoryImpl struct {
	db *database.DB
}

func NewBenefitRepository(db *database.DB) benefit.BenefitRepository {
	return &benefitRepositoryImpl{db: db}
}

// ListByPosition implements benefit.BenefitRepository.
func (r *benefitRepositoryImpl) ListByPosition(ctx context.Context, positionTitle string) ([]benefit.BenefitAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, position_title, benefit_name, amount, created_at, updated_at
		FROM benefit_assignments
		WHERE position_title = $1
		ORDER BY benefit_name
	`

	rows, err := q.Query(ctx, query, positionTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]benefit.BenefitAssignment, 0)
	for rows.Next() {
		var a benefit.BenefitAssignment
		if err := rows.Scan(
			&a.ID, &a.PositionTitle, &a.BenefitName, &a.Amount, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
