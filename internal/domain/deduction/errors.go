package deduction

import "errors"

var (
	ErrRuleNotFound        = errors.New("deduction rule not found")
	ErrInvalidKind         = errors.New("invalid deduction kind")
	ErrOverlappingBrackets = errors.New("deduction brackets overlap for the same kind and scope")
	ErrMisconfiguredRule   = errors.New("deduction rule is misconfigured")
)
