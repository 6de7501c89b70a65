package attendance

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordPunchesRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`               // YYYY-MM-DD
	TimeIn     *string `json:"time_in,omitempty"`  // HH:MM
	TimeOut    *string `json:"time_out,omitempty"` // HH:MM
}

func (r *RecordPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.TimeIn != nil {
		if _, ok := validator.IsValidClock(*r.TimeIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "time_in", Message: "must be a valid clock time (HH:MM)"})
		}
	}
	if r.TimeOut != nil {
		if _, ok := validator.IsValidClock(*r.TimeOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be a valid clock time (HH:MM)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Date           string          `json:"date"`
	TimeIn         *string         `json:"time_in,omitempty"`
	TimeOut        *string         `json:"time_out,omitempty"`
	WorkedHours    decimal.Decimal `json:"worked_hours"`
	LateHours      decimal.Decimal `json:"late_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	UndertimeHours decimal.Decimal `json:"undertime_hours"`
	Incomplete     bool            `json:"incomplete"`
}
