package overtime

import (
	"context"
	"time"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string) (OvertimeRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]OvertimeRequest, error)
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]OvertimeRequest, error)

	// DecideIfPending atomically moves a pending request to the given
	// terminal status. It returns the number of rows changed: zero means
	// another decision won the race and the caller must not report success.
	DecideIfPending(ctx context.Context, id string, status Status, decidedBy string, rejectionReason *string, decidedAt time.Time) (int64, error)

	// Cancel atomically moves a pending or approved request to cancelled.
	// A request already in a terminal status returns ErrAlreadyProcessed,
	// so a decision landing between the caller's read and this update
	// cannot be undone.
	Cancel(ctx context.Context, id string, cancelledAt time.Time) error
}
