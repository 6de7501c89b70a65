package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrNegativeSalary   = errors.New("monthly salary must be non-negative")
	ErrZeroWorkingDays  = errors.New("working days per month must be positive")
)
