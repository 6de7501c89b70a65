package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveBalance is one employee's annual balance for one leave type.
// Remaining is always derived; it is never stored or mutated directly.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	TotalDays     decimal.Decimal
	UsedDays      decimal.Decimal
	CarryOverDays decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining is total + carry-over - used, floored at zero.
func (b LeaveBalance) Remaining() decimal.Decimal {
	remaining := b.TotalDays.Add(b.CarryOverDays).Sub(b.UsedDays)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Deduct consumes days from the balance. The balance is left untouched when
// the request exceeds what remains.
func (b *LeaveBalance) Deduct(days decimal.Decimal) error {
	if !days.IsPositive() {
		return ErrInvalidDays
	}
	if days.GreaterThan(b.Remaining()) {
		return ErrInsufficientBalance
	}
	b.UsedDays = b.UsedDays.Add(days)
	return nil
}

// Restore returns previously consumed days, e.g. when an approved leave is
// cancelled. Used days never go below zero.
func (b *LeaveBalance) Restore(days decimal.Decimal) error {
	if !days.IsPositive() {
		return ErrInvalidDays
	}
	b.UsedDays = b.UsedDays.Sub(days)
	if b.UsedDays.IsNegative() {
		b.UsedDays = decimal.Zero
	}
	return nil
}

// ResolveConflict reconciles two divergent copies of the same balance key by
// last-writer-wins: whichever copy was updated later is taken whole. Use this
// when replicas of the same record drift apart.
func (b LeaveBalance) ResolveConflict(other LeaveBalance) LeaveBalance {
	if other.UpdatedAt.After(b.UpdatedAt) {
		return other
	}
	return b
}

// MergeWith combines two copies conservatively, keeping the larger of each
// figure. Unlike ResolveConflict this never discards usage either side has
// seen; use it when neither copy is authoritative.
func (b LeaveBalance) MergeWith(other LeaveBalance) LeaveBalance {
	merged := b
	merged.TotalDays = decimal.Max(b.TotalDays, other.TotalDays)
	merged.UsedDays = decimal.Max(b.UsedDays, other.UsedDays)
	merged.CarryOverDays = decimal.Max(b.CarryOverDays, other.CarryOverDays)
	if other.UpdatedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = other.UpdatedAt
	}
	return merged
}

// NextYearBalance produces the opening balance for the following year:
// carry-over is the remaining days capped at maxCarryOver, usage resets.
func (b LeaveBalance) NextYearBalance(maxCarryOver decimal.Decimal) LeaveBalance {
	next := LeaveBalance{
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year + 1,
		TotalDays:     b.TotalDays,
		UsedDays:      decimal.Zero,
		CarryOverDays: decimal.Min(b.Remaining(), maxCarryOver),
	}
	return next
}

// LeaveRequest is consumed read-only by the engine: approved paid leave is
// pay-neutral, approved unpaid leave deducts from the period's pay.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        decimal.Decimal
	Paid        bool
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)
