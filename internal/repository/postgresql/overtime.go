package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `
	id, employee_id, date, start_time, end_time, reason, status,
	hours, pay, requires_higher_approval,
	rejection_reason, decided_by, decided_at, created_at, updated_at
`

func scanOvertime(row pgx.Row) (overtime.OvertimeRequest, error) {
	var r overtime.OvertimeRequest
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.StartTime, &r.EndTime, &r.Reason, &r.Status,
		&r.Hours, &r.Pay, &r.RequiresHigherApproval,
		&r.RejectionReason, &r.DecidedBy, &r.DecidedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, employee_id, date, start_time, end_time, reason, status,
			hours, pay, requires_higher_approval,
			rejection_reason, decided_by, decided_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING ` + overtimeColumns

	created, err := scanOvertime(q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Date, req.StartTime, req.EndTime, req.Reason, req.Status,
		req.Hours, req.Pay, req.RequiresHigherApproval,
		req.RejectionReason, req.DecidedBy, req.DecidedAt,
	))
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests WHERE id = $1`

	req, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeNotFound
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return req, nil
}

// ListByEmployee implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	return collectOvertime(rows)
}

// ListApprovedInRange implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND status = 'approved' AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overtime: %w", err)
	}
	defer rows.Close()

	return collectOvertime(rows)
}

// DecideIfPending implements overtime.OvertimeRepository. The WHERE clause
// on pending status makes the decision a compare-and-set: of two racing
// approvers only one sees an affected row.
func (r *overtimeRepositoryImpl) DecideIfPending(ctx context.Context, id string, status overtime.Status, decidedBy string, rejectionReason *string, decidedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, decided_by = $3, rejection_reason = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, decidedBy, rejectionReason, decidedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to decide overtime request: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Cancel implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Cancel(ctx context.Context, id string, cancelledAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = 'cancelled', updated_at = $2
		WHERE id = $1 AND status IN ('pending', 'approved')
	`

	tag, err := q.Exec(ctx, query, id, cancelledAt)
	if err != nil {
		return fmt.Errorf("failed to cancel overtime request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrAlreadyProcessed
	}

	return nil
}

func collectOvertime(rows pgx.Rows) ([]overtime.OvertimeRequest, error) {
	requests := make([]overtime.OvertimeRequest, 0)
	for rows.Next() {
		req, err := scanOvertime(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
