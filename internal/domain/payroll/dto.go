package payroll

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	PeriodID    string   `json:"period_id"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must not contain empty entries"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID               string                     `json:"id"`
	EmployeeID       string                     `json:"employee_id"`
	EmployeeName     string                     `json:"employee_name,omitempty"`
	EmployeeCode     string                     `json:"employee_code,omitempty"`
	PeriodID         string                     `json:"period_id"`
	BasicSalary      decimal.Decimal            `json:"basic_salary"`
	TotalBenefits    decimal.Decimal            `json:"total_benefits"`
	OvertimePay      decimal.Decimal            `json:"overtime_pay"`
	GrossIncome      decimal.Decimal            `json:"gross_income"`
	TotalDeductions  decimal.Decimal            `json:"total_deductions"`
	NetSalary        decimal.Decimal            `json:"net_salary"`
	TardinessPenalty decimal.Decimal            `json:"tardiness_penalty"`
	UnpaidLeaveDays  decimal.Decimal            `json:"unpaid_leave_days"`
	DeductionsDetail map[string]decimal.Decimal `json:"deductions_detail,omitempty"`
	BenefitsDetail   map[string]decimal.Decimal `json:"benefits_detail,omitempty"`
}

func ToRecordResponse(r PayrollRecord) PayrollRecordResponse {
	deductions := make(map[string]decimal.Decimal, len(r.DeductionsDetail))
	for kind, amount := range r.DeductionsDetail {
		deductions[string(kind)] = amount
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     employeeName,
		EmployeeCode:     employeeCode,
		PeriodID:         r.PeriodID,
		BasicSalary:      r.BasicSalary,
		TotalBenefits:    r.TotalBenefits,
		OvertimePay:      r.OvertimePay,
		GrossIncome:      r.GrossIncome,
		TotalDeductions:  r.TotalDeductions,
		NetSalary:        r.NetSalary,
		TardinessPenalty: r.TardinessPenalty,
		UnpaidLeaveDays:  r.UnpaidLeaveDays,
		DeductionsDetail: deductions,
		BenefitsDetail:   r.BenefitsDetail,
	}
}

func ToRecordResponses(records []PayrollRecord) []PayrollRecordResponse {
	result := make([]PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, ToRecordResponse(r))
	}
	return result
}
