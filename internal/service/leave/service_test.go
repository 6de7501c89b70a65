package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	balances map[string]leave.LeaveBalance
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{balances: make(map[string]leave.LeaveBalance)}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)
}

func (f *fakeLeaveRepo) GetBalance(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return b, nil
}

func (f *fakeLeaveRepo) ListBalances(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var result []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeLeaveRepo) UpsertBalance(_ context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.balances[balanceKey(balance.EmployeeID, balance.LeaveTypeID, balance.Year)] = balance
	return balance, nil
}

func (f *fakeLeaveRepo) ListApprovedRequestsInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) HasApprovedLeaveOnDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return false, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedBalance(repo *fakeLeaveRepo, total, used, carryOver string) leave.LeaveBalance {
	b := leave.LeaveBalance{
		ID:            "bal-1",
		EmployeeID:    "emp-1",
		LeaveTypeID:   "vacation",
		Year:          2026,
		TotalDays:     dec(total),
		UsedDays:      dec(used),
		CarryOverDays: dec(carryOver),
		UpdatedAt:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.balances[balanceKey(b.EmployeeID, b.LeaveTypeID, b.Year)] = b
	return b
}

func newTestLedger(repo *fakeLeaveRepo) *Ledger {
	cfg := config.PayrollConfig{LeaveMaxCarryOverDays: dec("5")}
	return NewLedger(cfg, repo)
}

func TestDeductWithinRemaining(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "0")
	ledger := newTestLedger(repo)

	resp, err := ledger.Deduct(context.Background(), leave.DeductBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		Year:        2026,
		Days:        dec("3"),
	})
	require.NoError(t, err)

	assert.True(t, resp.UsedDays.Equal(dec("13")))
	assert.True(t, resp.RemainingDays.Equal(dec("2")))
}

func TestDeductBeyondRemainingLeavesBalanceUntouched(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "0")
	ledger := newTestLedger(repo)

	// 15 total - 10 used leaves 5 remaining; 6 must be refused.
	_, err := ledger.Deduct(context.Background(), leave.DeductBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		Year:        2026,
		Days:        dec("6"),
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	stored, err := repo.GetBalance(context.Background(), "emp-1", "vacation", 2026)
	require.NoError(t, err)
	assert.True(t, stored.UsedDays.Equal(dec("10")), "failed deduction must not mutate the balance")
}

func TestDeductHalfDays(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "0")
	ledger := newTestLedger(repo)

	resp, err := ledger.Deduct(context.Background(), leave.DeductBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		Year:        2026,
		Days:        dec("0.5"),
	})
	require.NoError(t, err)
	assert.True(t, resp.RemainingDays.Equal(dec("4.5")))
}

func TestRestoreFloorsUsedAtZero(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "2", "0")
	ledger := newTestLedger(repo)

	resp, err := ledger.Restore(context.Background(), leave.DeductBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		Year:        2026,
		Days:        dec("3"),
	})
	require.NoError(t, err)
	assert.True(t, resp.UsedDays.Equal(decimal.Zero))
}

func TestSyncLastWriterWins(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "0")
	ledger := newTestLedger(repo)

	resp, err := ledger.Sync(context.Background(), leave.SyncBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "vacation",
		Year:          2026,
		TotalDays:     dec("15"),
		UsedDays:      dec("7"),
		CarryOverDays: dec("2"),
		UpdatedAt:     "2026-07-01T00:00:00Z",
		Strategy:      leave.SyncLastWriter,
	})
	require.NoError(t, err)

	// The incoming copy is newer so it replaces the stored one wholesale,
	// even though its usage is lower.
	assert.True(t, resp.UsedDays.Equal(dec("7")))
	assert.True(t, resp.CarryOverDays.Equal(dec("2")))
}

func TestSyncLastWriterKeepsNewerStoredCopy(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "0")
	ledger := newTestLedger(repo)

	resp, err := ledger.Sync(context.Background(), leave.SyncBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "vacation",
		Year:          2026,
		TotalDays:     dec("15"),
		UsedDays:      dec("7"),
		CarryOverDays: dec("2"),
		UpdatedAt:     "2026-05-01T00:00:00Z",
		Strategy:      leave.SyncLastWriter,
	})
	require.NoError(t, err)

	assert.True(t, resp.UsedDays.Equal(dec("10")))
	assert.True(t, resp.CarryOverDays.Equal(dec("0")))
}

func TestSyncConservativeKeepsLargerFigures(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "10", "1")
	ledger := newTestLedger(repo)

	resp, err := ledger.Sync(context.Background(), leave.SyncBalanceRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "vacation",
		Year:          2026,
		TotalDays:     dec("16"),
		UsedDays:      dec("7"),
		CarryOverDays: dec("2"),
		UpdatedAt:     "2026-07-01T00:00:00Z",
		Strategy:      leave.SyncConservative,
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalDays.Equal(dec("16")))
	assert.True(t, resp.UsedDays.Equal(dec("10")), "conservative merge never forgets usage")
	assert.True(t, resp.CarryOverDays.Equal(dec("2")))
}

func TestSyncAdoptsIncomingWhenNoStoredCopy(t *testing.T) {
	repo := newFakeLeaveRepo()
	ledger := newTestLedger(repo)

	resp, err := ledger.Sync(context.Background(), leave.SyncBalanceRequest{
		EmployeeID:    "emp-9",
		LeaveTypeID:   "sick",
		Year:          2026,
		TotalDays:     dec("10"),
		UsedDays:      dec("1"),
		CarryOverDays: dec("0"),
		UpdatedAt:     "2026-07-01T00:00:00Z",
		Strategy:      leave.SyncLastWriter,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.RemainingDays.Equal(dec("9")))
}

func TestRolloverCapsCarryOver(t *testing.T) {
	repo := newFakeLeaveRepo()
	seedBalance(repo, "15", "2", "0") // 13 remaining, cap is 5
	ledger := newTestLedger(repo)

	responses, err := ledger.Rollover(context.Background(), "emp-1", 2026)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	next := responses[0]
	assert.Equal(t, 2027, next.Year)
	assert.True(t, next.CarryOverDays.Equal(dec("5")))
	assert.True(t, next.UsedDays.Equal(decimal.Zero))
	assert.True(t, next.TotalDays.Equal(dec("15")))
	assert.True(t, next.RemainingDays.Equal(dec("20")))
}
