package deduction

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRuleRequest struct {
	Kind       string           `json:"kind"`
	LowerBound *decimal.Decimal `json:"lower_bound,omitempty"`
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Rate       *decimal.Decimal `json:"rate,omitempty"`
	BaseAmount *decimal.Decimal `json:"base_amount,omitempty"`
	MinAmount  *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount  *decimal.Decimal `json:"max_amount,omitempty"`
	PeriodID   *string          `json:"period_id,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Kind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be a known deduction kind"})
	}
	if r.Amount == nil && r.Rate == nil {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "either amount or rate is required"})
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Rate != nil && r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be non-negative"})
	}
	if r.LowerBound != nil && r.UpperBound != nil && r.UpperBound.LessThan(*r.LowerBound) {
		errs = append(errs, validator.ValidationError{Field: "upper_bound", Message: "must be at or above lower_bound"})
	}
	if r.MinAmount != nil && r.MaxAmount != nil && r.MaxAmount.LessThan(*r.MinAmount) {
		errs = append(errs, validator.ValidationError{Field: "max_amount", Message: "must be at or above min_amount"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RuleResponse struct {
	ID         string           `json:"id"`
	Kind       string           `json:"kind"`
	LowerBound *decimal.Decimal `json:"lower_bound,omitempty"`
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Rate       *decimal.Decimal `json:"rate,omitempty"`
	BaseAmount *decimal.Decimal `json:"base_amount,omitempty"`
	MinAmount  *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount  *decimal.Decimal `json:"max_amount,omitempty"`
	PeriodID   *string          `json:"period_id,omitempty"`
}

// TableViolation names one overlap found by rule validation.
type TableViolation struct {
	Kind    string `json:"kind"`
	RuleID  string `json:"rule_id"`
	OtherID string `json:"other_id"`
	Message string `json:"message"`
}
