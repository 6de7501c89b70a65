package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// OvertimeRequest is a same-day overtime window submitted by an employee.
// Pending requests move to approved or rejected exactly once; cancellation
// is allowed while pending, or while approved and the window has not begun.
type OvertimeRequest struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
	Status     Status

	Hours decimal.Decimal
	Pay   decimal.Decimal

	// RequiresHigherApproval marks durations past the escalation threshold;
	// enforcing who may approve is the caller's concern.
	RequiresHigherApproval bool

	RejectionReason *string
	DecidedBy       *string
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r OvertimeRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected || r.Status == StatusCancelled
}

// HasStarted reports whether the overtime window has begun as of now.
func (r OvertimeRequest) HasStarted(now time.Time) bool {
	return !now.Before(r.StartTime)
}
