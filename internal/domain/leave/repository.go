package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	ListBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	UpsertBalance(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)

	ListApprovedRequestsInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
	HasApprovedLeaveOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
