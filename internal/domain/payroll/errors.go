package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrNoRecordsGenerated    = errors.New("no payroll records were generated")
	ErrZeroWorkingDays       = errors.New("pay period has zero working days")
	ErrNoBaseSalary          = errors.New("employee has no base salary configured")
)
