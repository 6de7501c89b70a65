package leave

import "errors"

var (
	ErrLeaveBalanceNotFound = errors.New("leave balance not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrInvalidDays          = errors.New("leave days must be positive")
	ErrBalanceKeyMismatch   = errors.New("leave balances belong to different employee/type/year keys")
)
