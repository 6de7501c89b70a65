package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// PayrollRecord is the terminal artifact of a period's generation run. A
// period's records are always rebuilt from scratch, never patched, so
// regeneration from unchanged inputs is idempotent.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	PeriodID   string

	BasicSalary     decimal.Decimal
	TotalBenefits   decimal.Decimal
	OvertimePay     decimal.Decimal
	GrossIncome     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	DeductionsDetail map[deduction.Kind]decimal.Decimal
	TardinessPenalty decimal.Decimal
	UnpaidLeaveDays  decimal.Decimal
	BenefitsDetail   map[string]decimal.Decimal

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// GenerationFailure records one employee whose record could not be built.
type GenerationFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// GenerationSummary reports the outcome of a period generation run.
// Per-employee failures are isolated here; the run itself only fails when
// nothing was generated.
type GenerationSummary struct {
	PeriodID       string              `json:"period_id"`
	GeneratedCount int                 `json:"generated_count"`
	Failures       []GenerationFailure `json:"failures,omitempty"`
	Partial        bool                `json:"partial"`
}

// Discrepancy names one field that failed reconciliation on one record.
type Discrepancy struct {
	EmployeeID string          `json:"employee_id"`
	Field      string          `json:"field"`
	Expected   decimal.Decimal `json:"expected"`
	Found      decimal.Decimal `json:"found"`
}

// VerificationResult is the outcome of an audit pass over a period. A
// discrepancy is a first-class result, not an error.
type VerificationResult struct {
	PeriodID        string          `json:"period_id"`
	TotalRecords    int             `json:"total_records"`
	VerifiedCount   int             `json:"verified_count"`
	DiscrepantCount int             `json:"discrepant_count"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	ComplianceScore decimal.Decimal `json:"compliance_score"` // 0..100
	Discrepancies   []Discrepancy   `json:"discrepancies,omitempty"`
}
