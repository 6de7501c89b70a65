package payroll

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyConfig() config.VerifyConfig {
	return config.VerifyConfig{
		SalaryTolerancePct: dec("0.02"),
		NetToleranceAbs:    dec("5.00"),
		MaxDeductionShare:  dec("0.9"),
	}
}

func generatedFixture(t *testing.T) (*fixture, *Verifier, string) {
	t.Helper()
	f := newFixture(t)
	p := f.marchWeek()
	f.addEmployee("emp-1", "rank and file", "Clerk", "21000")
	f.timesheet.lateHours["emp-1"] = dec("0.5")

	_, err := f.agg.Generate(context.Background(), payroll.GeneratePayrollRequest{PeriodID: p.ID})
	require.NoError(t, err)

	return f, NewVerifier(verifyConfig(), f.agg), p.ID
}

// tamper shifts the stored record's net and deductions by the same amount so
// the internal identity still holds and only the tolerance band is at stake.
func tamper(t *testing.T, f *fixture, periodID string, delta decimal.Decimal) {
	t.Helper()
	records := f.payrolls.records[periodID]
	require.Len(t, records, 1)
	records[0].TotalDeductions = records[0].TotalDeductions.Add(delta)
	records[0].NetSalary = records[0].NetSalary.Sub(delta)
}

func TestVerifyCleanPeriodScoresFull(t *testing.T) {
	_, v, periodID := generatedFixture(t)

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalRecords)
	assert.Equal(t, 1, result.VerifiedCount)
	assert.Equal(t, 0, result.DiscrepantCount)
	assert.Empty(t, result.Discrepancies)
	assert.True(t, result.ComplianceScore.Equal(dec("100")))
}

func TestVerifyNetWithinAbsoluteBandPasses(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	tamper(t, f, periodID, dec("4.30"))

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.VerifiedCount)
	assert.Empty(t, result.Discrepancies)
}

func TestVerifyNetBeyondAbsoluteBandFlagged(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	tamper(t, f, periodID, dec("6.00"))

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.VerifiedCount)
	assert.Equal(t, 1, result.DiscrepantCount)
	require.NotEmpty(t, result.Discrepancies)
	assert.Equal(t, "net_salary", result.Discrepancies[0].Field)
	assert.True(t, result.ComplianceScore.Equal(dec("0")))
}

func TestVerifyFlagsNegativeDeductions(t *testing.T) {
	f := newFixture(t)
	p := f.marchWeek()
	f.addEmployee("emp-1", "rank and file", "Clerk", "21000")

	_, err := f.agg.Generate(context.Background(), payroll.GeneratePayrollRequest{PeriodID: p.ID})
	require.NoError(t, err)

	// With no deductions at all, a small negative shift keeps the net
	// identity intact and stays inside every band; only the sign check
	// can catch it.
	tamper(t, f, p.ID, dec("-4.00"))

	v := NewVerifier(verifyConfig(), f.agg)
	result, err := v.Verify(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.VerifiedCount)
	require.NotEmpty(t, result.Discrepancies)
	assert.Equal(t, "total_deductions", result.Discrepancies[0].Field)
	assert.True(t, result.Discrepancies[0].Found.Equal(dec("-4.00")))
}

func TestVerifyFlagsDeductionDriftBeyondBand(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	tamper(t, f, periodID, dec("6.00"))

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	fields := make(map[string]bool)
	for _, d := range result.Discrepancies {
		fields[d.Field] = true
	}
	assert.True(t, fields["total_deductions"])
}

func TestVerifyFlagsBrokenGrossIdentity(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	records := f.payrolls.records[periodID]
	records[0].GrossIncome = records[0].GrossIncome.Add(dec("100"))

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.DiscrepantCount)
	fields := make(map[string]bool)
	for _, d := range result.Discrepancies {
		fields[d.Field] = true
	}
	assert.True(t, fields["gross_income"])
}

func TestVerifyFlagsExcessiveDeductionShare(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	records := f.payrolls.records[periodID]
	// Deductions at 95% of gross, identity kept intact.
	records[0].TotalDeductions = records[0].GrossIncome.Mul(dec("0.95")).Round(2)
	records[0].NetSalary = records[0].GrossIncome.Sub(records[0].TotalDeductions)

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	fields := make(map[string]bool)
	for _, d := range result.Discrepancies {
		fields[d.Field] = true
	}
	assert.True(t, fields["deduction_share"])
}

func TestVerifyMissingEmployeeIsDiscrepantNotFatal(t *testing.T) {
	f, v, periodID := generatedFixture(t)
	delete(f.employees.employees, "emp-1")

	result, err := v.Verify(context.Background(), periodID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.DiscrepantCount)
	require.NotEmpty(t, result.Discrepancies)
	assert.Equal(t, "employee", result.Discrepancies[0].Field)
}

func TestVerifyScoreStaysInRange(t *testing.T) {
	f := newFixture(t)
	p := f.marchWeek()
	f.addEmployee("emp-1", "rank and file", "Clerk", "21000")
	f.addEmployee("emp-2", "rank and file", "Clerk", "31500")

	_, err := f.agg.Generate(context.Background(), payroll.GeneratePayrollRequest{PeriodID: p.ID})
	require.NoError(t, err)

	// Break one of the two records.
	for i := range f.payrolls.records[p.ID] {
		if f.payrolls.records[p.ID][i].EmployeeID == "emp-2" {
			f.payrolls.records[p.ID][i].GrossIncome = f.payrolls.records[p.ID][i].GrossIncome.Add(dec("999"))
		}
	}

	v := NewVerifier(verifyConfig(), f.agg)
	result, err := v.Verify(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, 1, result.VerifiedCount)
	assert.True(t, result.ComplianceScore.Equal(dec("50")))
	assert.True(t, result.ComplianceScore.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.ComplianceScore.LessThanOrEqual(dec("100")))
}

func TestVerifyEmptyPeriod(t *testing.T) {
	f := newFixture(t)
	p := f.marchWeek()
	v := NewVerifier(verifyConfig(), f.agg)

	_, err := v.Verify(context.Background(), p.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}
