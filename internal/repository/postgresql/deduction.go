package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deductionRuleRepositoryImpl struct {
	db *database.DB
}

func NewDeductionRuleRepository(db *database.DB) deduction.DeductionRuleRepository {
	return &deductionRuleRepositoryImpl{db: db}
}

const ruleColumns = `
	id, kind, lower_bound, upper_bound, amount, rate, base_amount,
	min_amount, max_amount, period_id, created_at, updated_at
`

func scanRule(row pgx.Row) (deduction.DeductionRule, error) {
	var r deduction.DeductionRule
	err := row.Scan(
		&r.ID, &r.Kind, &r.LowerBound, &r.UpperBound, &r.Amount, &r.Rate, &r.BaseAmount,
		&r.MinAmount, &r.MaxAmount, &r.PeriodID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements deduction.DeductionRuleRepository.
func (r *deductionRuleRepositoryImpl) Create(ctx context.Context, rule deduction.DeductionRule) (deduction.DeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_rules (
			id, kind, lower_bound, upper_bound, amount, rate, base_amount,
			min_amount, max_amount, period_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + ruleColumns

	created, err := scanRule(q.QueryRow(ctx, query,
		rule.ID, rule.Kind, rule.LowerBound, rule.UpperBound, rule.Amount, rule.Rate,
		rule.BaseAmount, rule.MinAmount, rule.MaxAmount, rule.PeriodID,
	))
	if err != nil {
		return deduction.DeductionRule{}, fmt.Errorf("failed to create deduction rule: %w", err)
	}

	return created, nil
}

// Delete implements deduction.DeductionRuleRepository.
func (r *deductionRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deduction_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deduction rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return deduction.ErrRuleNotFound
	}

	return nil
}

// ListByKind implements deduction.DeductionRuleRepository. Period-scoped
// rows, when present, shadow the whole master table for that kind.
func (r *deductionRuleRepositoryImpl) ListByKind(ctx context.Context, kind deduction.Kind, periodID *string) ([]deduction.DeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	if periodID != nil {
		query := `
			SELECT ` + ruleColumns + `
			FROM deduction_rules
			WHERE kind = $1 AND period_id = $2
			ORDER BY lower_bound ASC NULLS FIRST
		`
		rows, err := q.Query(ctx, query, kind, *periodID)
		if err != nil {
			return nil, fmt.Errorf("failed to list deduction rules: %w", err)
		}
		scoped, err := collectRules(rows)
		if err != nil {
			return nil, err
		}
		if len(scoped) > 0 {
			return scoped, nil
		}
	}

	query := `
		SELECT ` + ruleColumns + `
		FROM deduction_rules
		WHERE kind = $1 AND period_id IS NULL
		ORDER BY lower_bound ASC NULLS FIRST
	`

	rows, err := q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction rules: %w", err)
	}

	return collectRules(rows)
}

// ListAll implements deduction.DeductionRuleRepository.
func (r *deductionRuleRepositoryImpl) ListAll(ctx context.Context) ([]deduction.DeductionRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ruleColumns + `
		FROM deduction_rules
		ORDER BY kind, period_id NULLS FIRST, lower_bound ASC NULLS FIRST
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction rules: %w", err)
	}

	return collectRules(rows)
}

func collectRules(rows pgx.Rows) ([]deduction.DeductionRule, error) {
	defer rows.Close()

	rules := make([]deduction.DeductionRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
