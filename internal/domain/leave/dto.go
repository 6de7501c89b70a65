package leave

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DeductBalanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	Days        decimal.Decimal `json:"days"`
}

func (r *DeductBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SyncStrategy selects how two divergent balance copies are combined.
type SyncStrategy string

const (
	// SyncLastWriter keeps the copy with the later update timestamp.
	SyncLastWriter SyncStrategy = "last_writer"
	// SyncConservative keeps the larger of each figure.
	SyncConservative SyncStrategy = "conservative"
)

type SyncBalanceRequest struct {
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	CarryOverDays decimal.Decimal `json:"carry_over_days"`
	UpdatedAt     string          `json:"updated_at"` // RFC3339
	Strategy      SyncStrategy    `json:"strategy"`
}

func (r *SyncBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if r.Strategy != SyncLastWriter && r.Strategy != SyncConservative {
		errs = append(errs, validator.ValidationError{Field: "strategy", Message: "must be 'last_writer' or 'conservative'"})
	}
	if r.TotalDays.IsNegative() || r.UsedDays.IsNegative() || r.CarryOverDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	CarryOverDays decimal.Decimal `json:"carry_over_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}
