package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type periodRepositoryImpl struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) period.PeriodRepository {
	return &periodRepositoryImpl{db: db}
}

// Create implements period.PeriodRepository.
func (r *periodRepositoryImpl) Create(ctx context.Context, p period.PayPeriod) (period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pay_periods WHERE start_date = $1 AND end_date = $2)`,
		p.StartDate, p.EndDate,
	).Scan(&exists)
	if err != nil {
		return period.PayPeriod{}, fmt.Errorf("failed to check pay period: %w", err)
	}
	if exists {
		return period.PayPeriod{}, period.ErrPeriodExists
	}

	query := `
		INSERT INTO pay_periods (id, name, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, start_date, end_date, created_at, updated_at
	`

	var created period.PayPeriod
	err = q.QueryRow(ctx, query, p.ID, p.Name, p.StartDate, p.EndDate).Scan(
		&created.ID, &created.Name, &created.StartDate, &created.EndDate,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return period.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return created, nil
}

// GetByID implements period.PeriodRepository.
func (r *periodRepositoryImpl) GetByID(ctx context.Context, id string) (period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM pay_periods
		WHERE id = $1
	`

	var p period.PayPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.PayPeriod{}, period.ErrPeriodNotFound
		}
		return period.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return p, nil
}

// List implements period.PeriodRepository.
func (r *periodRepositoryImpl) List(ctx context.Context) ([]period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM pay_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	periods := make([]period.PayPeriod, 0)
	for rows.Next() {
		var p period.PayPeriod
		if err := rows.Scan(
			&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}
