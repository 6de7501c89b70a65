package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// Create implements payroll.PayrollRepository. The deduction and benefit
// breakdowns ride along as jsonb; only the totals are real columns.
func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_id,
			basic_salary, total_benefits, overtime_pay, gross_income,
			total_deductions, net_salary,
			deductions_detail, tardiness_penalty, unpaid_leave_days, benefits_detail,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodID,
		record.BasicSalary, record.TotalBenefits, record.OvertimePay, record.GrossIncome,
		record.TotalDeductions, record.NetSalary,
		record.DeductionsDetail, record.TardinessPenalty, record.UnpaidLeaveDays, record.BenefitsDetail,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// DeleteByPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteByPeriod(ctx context.Context, periodID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE period_id = $1`, periodID); err != nil {
		return fmt.Errorf("failed to delete payroll records: %w", err)
	}

	return nil
}

const payrollSelect = `
	SELECT pr.id, pr.employee_id, pr.period_id,
		   pr.basic_salary, pr.total_benefits, pr.overtime_pay, pr.gross_income,
		   pr.total_deductions, pr.net_salary,
		   pr.deductions_detail, pr.tardiness_penalty, pr.unpaid_leave_days, pr.benefits_detail,
		   pr.created_at,
		   e.full_name AS employee_name,
		   e.employee_code AS employee_code
	FROM payroll_records pr
	JOIN employees e ON pr.employee_id = e.id
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var record payroll.PayrollRecord
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodID,
		&record.BasicSalary, &record.TotalBenefits, &record.OvertimePay, &record.GrossIncome,
		&record.TotalDeductions, &record.NetSalary,
		&record.DeductionsDetail, &record.TardinessPenalty, &record.UnpaidLeaveDays, &record.BenefitsDetail,
		&record.CreatedAt,
		&record.EmployeeName, &record.EmployeeCode,
	)
	return record, err
}

// ListByPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + `
		WHERE pr.period_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID, periodID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + `
		WHERE pr.employee_id = $1 AND pr.period_id = $2
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}
