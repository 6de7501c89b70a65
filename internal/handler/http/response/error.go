package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrCapabilityRequired):
		Forbidden(w, "Insufficient permissions")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)
	case errors.Is(err, employee.ErrZeroWorkingDays):
		BadRequest(w, "Working days configuration is zero", nil)
	case errors.Is(err, employee.ErrNegativeSalary):
		BadRequest(w, "Employee salary is negative", nil)

	// Period errors
	case errors.Is(err, period.ErrPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, period.ErrInvalidPeriod):
		BadRequest(w, "Pay period end date is before start date", nil)
	case errors.Is(err, period.ErrPeriodExists):
		Conflict(w, "Pay period already exists for this range")

	// Attendance errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrTimeOutBeforeTimeIn):
		BadRequest(w, "Time out is before time in", nil)

	// Overtime errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrNotRankAndFile):
		Forbidden(w, "Employee is not eligible for overtime pay")
	case errors.Is(err, overtime.ErrEndBeforeStart):
		BadRequest(w, "Overtime end time must be after start time", nil)
	case errors.Is(err, overtime.ErrBeforeShiftEnd):
		BadRequest(w, "Overtime must start at or after the end of the standard shift", nil)
	case errors.Is(err, overtime.ErrExceedsDailyCap):
		BadRequest(w, "Overtime exceeds the daily cap", nil)
	case errors.Is(err, overtime.ErrPastDate):
		BadRequest(w, "Overtime date is in the past", nil)
	case errors.Is(err, overtime.ErrLeaveConflict):
		Conflict(w, "Employee has approved leave on this date")
	case errors.Is(err, overtime.ErrRejectReasonMissing):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, overtime.ErrCannotCancelStarted):
		Conflict(w, "Overtime window has already started")

	// Leave errors
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrInvalidDays):
		BadRequest(w, "Leave days must be positive", nil)
	case errors.Is(err, leave.ErrBalanceKeyMismatch):
		BadRequest(w, "Leave balances belong to different keys", nil)

	// Deduction errors
	case errors.Is(err, deduction.ErrRuleNotFound):
		NotFound(w, "Deduction rule not found")
	case errors.Is(err, deduction.ErrInvalidKind):
		BadRequest(w, "Unknown deduction kind", nil)
	case errors.Is(err, deduction.ErrMisconfiguredRule):
		InternalServerError(w, "Deduction rule is misconfigured")

	// Payroll errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrNoRecordsGenerated):
		BadRequest(w, "No payroll records were generated", nil)
	case errors.Is(err, payroll.ErrZeroWorkingDays):
		BadRequest(w, "Pay period has zero working days", nil)
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
