package period

import "errors"

var (
	ErrPeriodNotFound = errors.New("pay period not found")
	ErrInvalidPeriod  = errors.New("pay period end date is before start date")
	ErrPeriodExists   = errors.New("pay period already exists for this range")
)
