package user

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrCapabilityRequired = errors.New("role does not hold the required capability")
)
