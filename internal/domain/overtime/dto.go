package overtime

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitOvertimeRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`       // YYYY-MM-DD
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM
	Reason     string `json:"reason"`
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidClock(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid clock time (HH:MM)"})
	}
	if _, ok := validator.IsValidClock(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid clock time (HH:MM)"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectOvertimeRequest struct {
	Reason string `json:"reason"`
}

type OvertimeResponse struct {
	ID                     string          `json:"id"`
	EmployeeID             string          `json:"employee_id"`
	Date                   string          `json:"date"`
	StartTime              string          `json:"start_time"`
	EndTime                string          `json:"end_time"`
	Reason                 string          `json:"reason"`
	Status                 string          `json:"status"`
	Hours                  decimal.Decimal `json:"hours"`
	Pay                    decimal.Decimal `json:"pay"`
	RequiresHigherApproval bool            `json:"requires_higher_approval"`
	RejectionReason        *string         `json:"rejection_reason,omitempty"`
}
