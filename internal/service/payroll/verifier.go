package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// Verifier audits a generated period by recomputing every record from the
// source data and comparing it to what was stored. Discrepancies are results,
// not errors: a run that finds problems still succeeds.
type Verifier struct {
	agg *Aggregator

	salaryTolerancePct decimal.Decimal
	netToleranceAbs    decimal.Decimal
	maxDeductionShare  decimal.Decimal
}

func NewVerifier(cfg config.VerifyConfig, agg *Aggregator) *Verifier {
	return &Verifier{
		agg:                agg,
		salaryTolerancePct: cfg.SalaryTolerancePct,
		netToleranceAbs:    cfg.NetToleranceAbs,
		maxDeductionShare:  cfg.MaxDeductionShare,
	}
}

// Verify reconciles every stored record for the period. A record counts as
// verified only when every check passes; missing source data marks it
// discrepant rather than failing the run.
func (v *Verifier) Verify(ctx context.Context, periodID string) (payroll.VerificationResult, error) {
	p, err := v.agg.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payroll.VerificationResult{}, err
	}

	records, err := v.agg.payrollRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return payroll.VerificationResult{}, fmt.Errorf("failed to list payroll records: %w", err)
	}
	if len(records) == 0 {
		return payroll.VerificationResult{}, payroll.ErrPayrollRecordNotFound
	}

	result := payroll.VerificationResult{
		PeriodID:        periodID,
		TotalRecords:    len(records),
		TotalNetPay:     decimal.Zero,
		TotalDeductions: decimal.Zero,
	}

	for _, record := range records {
		result.TotalNetPay = result.TotalNetPay.Add(record.NetSalary)
		result.TotalDeductions = result.TotalDeductions.Add(record.TotalDeductions)

		discrepancies := v.checkRecord(ctx, record, p)
		if len(discrepancies) == 0 {
			result.VerifiedCount++
			continue
		}
		result.DiscrepantCount++
		result.Discrepancies = append(result.Discrepancies, discrepancies...)
	}

	result.ComplianceScore = decimal.NewFromInt(int64(result.VerifiedCount)).
		Div(decimal.NewFromInt(int64(result.TotalRecords))).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	return result, nil
}

func (v *Verifier) checkRecord(ctx context.Context, record payroll.PayrollRecord, p period.PayPeriod) []payroll.Discrepancy {
	var discrepancies []payroll.Discrepancy

	// Internal identities hold exactly; they need no source data.
	gross := record.BasicSalary.Add(record.TotalBenefits).Add(record.OvertimePay).Round(v.agg.moneyScale)
	if !gross.Equal(record.GrossIncome) {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "gross_income",
			Expected:   gross,
			Found:      record.GrossIncome,
		})
	}
	net := record.GrossIncome.Sub(record.TotalDeductions)
	if !net.Equal(record.NetSalary) {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "net_salary",
			Expected:   net,
			Found:      record.NetSalary,
		})
	}

	// Deductions can never go below zero; a negative total also dodges the
	// share bound, so it is checked on its own.
	if record.TotalDeductions.IsNegative() {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "total_deductions",
			Expected:   decimal.Zero,
			Found:      record.TotalDeductions,
		})
	}

	if record.GrossIncome.IsPositive() {
		share := record.TotalDeductions.Div(record.GrossIncome)
		if share.GreaterThan(v.maxDeductionShare) {
			discrepancies = append(discrepancies, payroll.Discrepancy{
				EmployeeID: record.EmployeeID,
				Field:      "deduction_share",
				Expected:   v.maxDeductionShare,
				Found:      share.Round(4),
			})
		}
	}

	emp, err := v.agg.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "employee",
			Expected:   decimal.Zero,
			Found:      decimal.Zero,
		})
		return discrepancies
	}

	expected, err := v.agg.buildRecord(ctx, emp, p)
	if err != nil {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "recompute",
			Expected:   decimal.Zero,
			Found:      decimal.Zero,
		})
		return discrepancies
	}

	// Salary drift is judged relatively so tolerance scales with pay grade.
	salaryBand := expected.BasicSalary.Mul(v.salaryTolerancePct)
	if expected.BasicSalary.Sub(record.BasicSalary).Abs().GreaterThan(salaryBand) {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "basic_salary",
			Expected:   expected.BasicSalary,
			Found:      record.BasicSalary,
		})
	}

	// Net pay and total deductions are judged against an absolute band.
	if expected.NetSalary.Sub(record.NetSalary).Abs().GreaterThan(v.netToleranceAbs) {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "net_salary",
			Expected:   expected.NetSalary,
			Found:      record.NetSalary,
		})
	}
	if expected.TotalDeductions.Sub(record.TotalDeductions).Abs().GreaterThan(v.netToleranceAbs) {
		discrepancies = append(discrepancies, payroll.Discrepancy{
			EmployeeID: record.EmployeeID,
			Field:      "total_deductions",
			Expected:   expected.TotalDeductions,
			Found:      record.TotalDeductions,
		})
	}

	return discrepancies
}
