package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOvertimeRepo struct {
	requests map[string]overtime.OvertimeRequest
	afterGet func()
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{requests: make(map[string]overtime.OvertimeRequest)}
}

func (f *fakeOvertimeRepo) Create(_ context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id string) (overtime.OvertimeRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return overtime.OvertimeRequest{}, overtime.ErrOvertimeNotFound
	}
	if f.afterGet != nil {
		f.afterGet()
	}
	return req, nil
}

func (f *fakeOvertimeRepo) ListByEmployee(_ context.Context, employeeID string) ([]overtime.OvertimeRequest, error) {
	var result []overtime.OvertimeRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeOvertimeRepo) ListApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]overtime.OvertimeRequest, error) {
	var result []overtime.OvertimeRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == overtime.StatusApproved &&
			!r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeOvertimeRepo) DecideIfPending(_ context.Context, id string, status overtime.Status, decidedBy string, rejectionReason *string, decidedAt time.Time) (int64, error) {
	req, ok := f.requests[id]
	if !ok {
		return 0, nil
	}
	if req.Status != overtime.StatusPending {
		return 0, nil
	}
	req.Status = status
	req.DecidedBy = &decidedBy
	req.RejectionReason = rejectionReason
	req.DecidedAt = &decidedAt
	f.requests[id] = req
	return 1, nil
}

func (f *fakeOvertimeRepo) Cancel(_ context.Context, id string, cancelledAt time.Time) error {
	req, ok := f.requests[id]
	if !ok {
		return overtime.ErrAlreadyProcessed
	}
	if req.Status != overtime.StatusPending && req.Status != overtime.StatusApproved {
		return overtime.ErrAlreadyProcessed
	}
	req.Status = overtime.StatusCancelled
	req.UpdatedAt = cancelledAt
	f.requests[id] = req
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		if e.IsActive() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) GetActiveByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok && emp.IsActive() {
			result = append(result, emp)
		}
	}
	return result, nil
}

type fakeLeaveRepo struct {
	approvedDates map[string]bool // employeeID + date
}

func (f *fakeLeaveRepo) GetBalance(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
}

func (f *fakeLeaveRepo) ListBalances(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) UpsertBalance(_ context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	return balance, nil
}

func (f *fakeLeaveRepo) ListApprovedRequestsInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) HasApprovedLeaveOnDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return f.approvedDates[employeeID+"/"+date.Format("2006-01-02")], nil
}

func testConfig() config.PayrollConfig {
	return config.PayrollConfig{
		Timezone:                  "UTC",
		StandardStart:             "08:00",
		StandardEnd:               "17:00",
		GraceCutoff:               "08:10",
		LunchBreakMinutes:         60,
		WorkingDaysPerMonth:       21,
		HoursPerDay:               8,
		MoneyScale:                2,
		HourScale:                 2,
		OvertimeMultiplier:        decimal.RequireFromString("1.25"),
		HolidayOvertimeMultiplier: decimal.RequireFromString("1.30"),
		OvertimeDailyCapHours:     decimal.RequireFromString("4"),
		OvertimeAutoApproveHours:  decimal.RequireFromString("2"),
		OvertimeEscalationHours:   decimal.RequireFromString("3"),
		Holidays:                  []string{"12-25"},
		RankAndFileDepartment:     "rank and file",
		RankAndFileKeywords:       []string{"rank", "file"},
	}
}

func rankAndFileEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:            id,
		FullName:      "Ada Reyes",
		PositionTitle: "Payroll Rank and File",
		Department:    "rank and file",
		MonthlySalary: decimal.RequireFromString("20000"),
		Status:        employee.StatusActive,
	}
}

func newTestService(t *testing.T, repo *fakeOvertimeRepo, emps *fakeEmployeeRepo, leaves *fakeLeaveRepo) *Service {
	t.Helper()
	cfg := testConfig()
	svc, err := NewService(cfg, repo, emps, leaves,
		employee.NewClassifier(cfg.RankAndFileDepartment, cfg.RankAndFileKeywords))
	require.NoError(t, err)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func submitRequest(employeeID, date, start, end string) overtime.SubmitOvertimeRequest {
	return overtime.SubmitOvertimeRequest{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Reason:     "month-end closing",
	}
}

func TestSubmitAutoApprovesShortWindow(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})

	resp, err := svc.Submit(context.Background(), submitRequest("emp-1", "2026-03-02", "17:00", "19:00"))
	require.NoError(t, err)

	assert.Equal(t, string(overtime.StatusApproved), resp.Status)
	assert.False(t, resp.RequiresHigherApproval)
	assert.True(t, resp.Hours.Equal(decimal.RequireFromString("2")))

	// pay = 2h x hourly rate x 1.25
	rate, err := rankAndFileEmployee("emp-1").HourlyRate(21, 8, 2)
	require.NoError(t, err)
	expected := decimal.RequireFromString("2").Mul(rate).Mul(decimal.RequireFromString("1.25")).Round(2)
	assert.True(t, resp.Pay.Equal(expected), "got %s want %s", resp.Pay, expected)
}

func TestSubmitLongWindowStaysPending(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})

	resp, err := svc.Submit(context.Background(), submitRequest("emp-1", "2026-03-02", "17:00", "20:30"))
	require.NoError(t, err)

	assert.Equal(t, string(overtime.StatusPending), resp.Status)
	assert.True(t, resp.RequiresHigherApproval, "3.5h exceeds the escalation threshold")
}

func TestSubmitValidationFailures(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": rankAndFileEmployee("emp-1"),
	}}
	exempt := rankAndFileEmployee("emp-2")
	exempt.Department = "finance"
	exempt.PositionTitle = "Chief Accountant"
	emps.employees["emp-2"] = exempt

	leaves := &fakeLeaveRepo{approvedDates: map[string]bool{"emp-1/2026-03-05": true}}
	svc := newTestService(t, repo, emps, leaves)
	ctx := context.Background()

	tests := []struct {
		name string
		req  overtime.SubmitOvertimeRequest
		want error
	}{
		{"end before start", submitRequest("emp-1", "2026-03-02", "19:00", "18:00"), overtime.ErrEndBeforeStart},
		{"zero duration", submitRequest("emp-1", "2026-03-02", "18:00", "18:00"), overtime.ErrEndBeforeStart},
		{"starts before shift end", submitRequest("emp-1", "2026-03-02", "16:00", "18:00"), overtime.ErrBeforeShiftEnd},
		{"exceeds daily cap", submitRequest("emp-1", "2026-03-02", "17:00", "21:30"), overtime.ErrExceedsDailyCap},
		{"past date", submitRequest("emp-1", "2026-03-01", "17:00", "19:00"), overtime.ErrPastDate},
		{"leave conflict", submitRequest("emp-1", "2026-03-05", "17:00", "19:00"), overtime.ErrLeaveConflict},
		{"not rank and file", submitRequest("emp-2", "2026-03-02", "17:00", "19:00"), overtime.ErrNotRankAndFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitHolidayMultiplier(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})

	resp, err := svc.Submit(context.Background(), submitRequest("emp-1", "2026-12-25", "17:00", "19:00"))
	require.NoError(t, err)

	rate, err := rankAndFileEmployee("emp-1").HourlyRate(21, 8, 2)
	require.NoError(t, err)
	expected := decimal.RequireFromString("2").Mul(rate).Mul(decimal.RequireFromString("1.30")).Round(2)
	assert.True(t, resp.Pay.Equal(expected), "got %s want %s", resp.Pay, expected)
}

func TestApproveIsCompareAndSet(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})
	ctx := context.Background()

	resp, err := svc.Submit(ctx, submitRequest("emp-1", "2026-03-02", "17:00", "19:30"))
	require.NoError(t, err)
	require.Equal(t, string(overtime.StatusPending), resp.Status)

	approved, err := svc.Approve(ctx, resp.ID, "supervisor-1")
	require.NoError(t, err)
	assert.Equal(t, string(overtime.StatusApproved), approved.Status)

	// Second decision loses the race.
	_, err = svc.Approve(ctx, resp.ID, "supervisor-2")
	assert.ErrorIs(t, err, overtime.ErrAlreadyProcessed)

	_, err = svc.Reject(ctx, resp.ID, "supervisor-2", "too long")
	assert.ErrorIs(t, err, overtime.ErrAlreadyProcessed)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})
	ctx := context.Background()

	resp, err := svc.Submit(ctx, submitRequest("emp-1", "2026-03-02", "17:00", "19:30"))
	require.NoError(t, err)

	_, err = svc.Reject(ctx, resp.ID, "supervisor-1", "  ")
	assert.ErrorIs(t, err, overtime.ErrRejectReasonMissing)

	rejected, err := svc.Reject(ctx, resp.ID, "supervisor-1", "not justified")
	require.NoError(t, err)
	assert.Equal(t, string(overtime.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "not justified", *rejected.RejectionReason)
}

func TestCancelRules(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})
	ctx := context.Background()

	// Approved but not started: cancellable.
	resp, err := svc.Submit(ctx, submitRequest("emp-1", "2026-03-02", "17:00", "19:00"))
	require.NoError(t, err)
	require.Equal(t, string(overtime.StatusApproved), resp.Status)

	cancelled, err := svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(overtime.StatusCancelled), cancelled.Status)

	// A cancelled request is terminal.
	_, err = svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, overtime.ErrAlreadyProcessed)

	// Approved and already started: not cancellable.
	resp, err = svc.Submit(ctx, submitRequest("emp-1", "2026-03-02", "17:00", "18:00"))
	require.NoError(t, err)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	}
	_, err = svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, overtime.ErrCannotCancelStarted)
}

func TestCancelLosesRaceAgainstDecision(t *testing.T) {
	repo := newFakeOvertimeRepo()
	emps := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": rankAndFileEmployee("emp-1")}}
	svc := newTestService(t, repo, emps, &fakeLeaveRepo{})
	ctx := context.Background()

	resp, err := svc.Submit(ctx, submitRequest("emp-1", "2026-03-02", "17:00", "20:30"))
	require.NoError(t, err)
	require.Equal(t, string(overtime.StatusPending), resp.Status)

	// A rejection lands between the cancel's read and its update; the
	// guarded update must refuse to overwrite the decision.
	repo.afterGet = func() {
		repo.afterGet = nil
		req := repo.requests[resp.ID]
		req.Status = overtime.StatusRejected
		repo.requests[resp.ID] = req
	}

	_, err = svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, overtime.ErrAlreadyProcessed)

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusRejected, stored.Status)
}
