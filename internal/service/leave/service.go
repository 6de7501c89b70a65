package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger manages annual leave balances. All figures are decimal days so
// half-day leave survives the arithmetic.
type Ledger struct {
	repo         leave.LeaveRepository
	maxCarryOver decimal.Decimal
	now          func() time.Time
}

func NewLedger(cfg config.PayrollConfig, repo leave.LeaveRepository) *Ledger {
	return &Ledger{
		repo:         repo,
		maxCarryOver: cfg.LeaveMaxCarryOverDays,
		now:          time.Now,
	}
}

func (l *Ledger) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.BalanceResponse, error) {
	balance, err := l.repo.GetBalance(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return toBalanceResponse(balance), nil
}

func (l *Ledger) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.repo.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, toBalanceResponse(b))
	}
	return responses, nil
}

// Deduct consumes days from a balance. The stored balance is only written
// after the deduction is known to fit; a failed deduction mutates nothing.
func (l *Ledger) Deduct(ctx context.Context, req leave.DeductBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.repo.GetBalance(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if err := balance.Deduct(req.Days); err != nil {
		return leave.BalanceResponse{}, err
	}
	balance.UpdatedAt = l.now()

	updated, err := l.repo.UpsertBalance(ctx, balance)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to save leave balance: %w", err)
	}
	return toBalanceResponse(updated), nil
}

// Restore gives previously consumed days back, e.g. after a cancelled leave.
func (l *Ledger) Restore(ctx context.Context, req leave.DeductBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.repo.GetBalance(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if err := balance.Restore(req.Days); err != nil {
		return leave.BalanceResponse{}, err
	}
	balance.UpdatedAt = l.now()

	updated, err := l.repo.UpsertBalance(ctx, balance)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to save leave balance: %w", err)
	}
	return toBalanceResponse(updated), nil
}

// Sync reconciles the stored balance against an incoming copy of the same
// balance key, typically pushed from another system. The strategy picks
// between last-writer-wins and a conservative merge that keeps the larger of
// each figure. When no stored copy exists the incoming one is adopted.
func (l *Ledger) Sync(ctx context.Context, req leave.SyncBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	updatedAt, err := time.Parse(time.RFC3339, req.UpdatedAt)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("invalid updated_at timestamp: %w", err)
	}

	incoming := leave.LeaveBalance{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		Year:          req.Year,
		TotalDays:     req.TotalDays,
		UsedDays:      req.UsedDays,
		CarryOverDays: req.CarryOverDays,
		UpdatedAt:     updatedAt,
	}

	stored, err := l.repo.GetBalance(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err == leave.ErrLeaveBalanceNotFound {
		incoming.ID = uuid.NewString()
		adopted, upsertErr := l.repo.UpsertBalance(ctx, incoming)
		if upsertErr != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to save leave balance: %w", upsertErr)
		}
		return toBalanceResponse(adopted), nil
	}
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if stored.EmployeeID != incoming.EmployeeID ||
		stored.LeaveTypeID != incoming.LeaveTypeID ||
		stored.Year != incoming.Year {
		return leave.BalanceResponse{}, leave.ErrBalanceKeyMismatch
	}

	var resolved leave.LeaveBalance
	switch req.Strategy {
	case leave.SyncConservative:
		resolved = stored.MergeWith(incoming)
	default:
		resolved = stored.ResolveConflict(incoming)
	}
	resolved.ID = stored.ID

	updated, err := l.repo.UpsertBalance(ctx, resolved)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to save leave balance: %w", err)
	}
	return toBalanceResponse(updated), nil
}

// Rollover opens next year's balances for an employee: each current balance
// carries its remaining days forward, capped at the configured maximum, with
// usage reset to zero.
func (l *Ledger) Rollover(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := l.repo.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		next := b.NextYearBalance(l.maxCarryOver)
		next.ID = uuid.NewString()
		next.CreatedAt = l.now()
		next.UpdatedAt = next.CreatedAt

		saved, err := l.repo.UpsertBalance(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("failed to save rolled-over balance: %w", err)
		}
		responses = append(responses, toBalanceResponse(saved))
	}
	return responses, nil
}

func toBalanceResponse(b leave.LeaveBalance) leave.BalanceResponse {
	return leave.BalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		CarryOverDays: b.CarryOverDays,
		RemainingDays: b.Remaining(),
	}
}
