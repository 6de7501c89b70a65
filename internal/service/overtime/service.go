package overtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service governs the overtime request lifecycle: submit-time validation,
// auto-approval, atomic approve/reject, and cancellation rules.
type Service struct {
	overtimeRepo overtime.OvertimeRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRepository
	classifier   employee.Classifier
	payPolicy    overtime.PayPolicy

	standardEndMin      int
	dailyCapHours       decimal.Decimal
	autoApproveHours    decimal.Decimal
	escalationHours     decimal.Decimal
	workingDaysPerMonth int
	hoursPerDay         int
	hourScale           int32
	moneyScale          int32
	location            *time.Location

	now func() time.Time
}

func NewService(
	cfg config.PayrollConfig,
	overtimeRepo overtime.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	classifier employee.Classifier,
) (*Service, error) {
	standardEnd, ok := validator.IsValidClock(cfg.StandardEnd)
	if !ok {
		return nil, fmt.Errorf("invalid standard end time %q", cfg.StandardEnd)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &Service{
		overtimeRepo: overtimeRepo,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		classifier:   classifier,
		payPolicy: overtime.NewPayPolicy(
			cfg.OvertimeMultiplier,
			cfg.HolidayOvertimeMultiplier,
			cfg.Holidays,
			cfg.MoneyScale,
		),
		standardEndMin:      standardEnd,
		dailyCapHours:       cfg.OvertimeDailyCapHours,
		autoApproveHours:    cfg.OvertimeAutoApproveHours,
		escalationHours:     cfg.OvertimeEscalationHours,
		workingDaysPerMonth: cfg.WorkingDaysPerMonth,
		hoursPerDay:         cfg.HoursPerDay,
		hourScale:           cfg.HourScale,
		moneyScale:          cfg.MoneyScale,
		location:            loc,
		now:                 time.Now,
	}, nil
}

// PayPolicy exposes the pricing rule so payroll aggregation prices approved
// windows with the same multipliers.
func (s *Service) PayPolicy() overtime.PayPolicy {
	return s.payPolicy
}

// Submit validates a new request and files it. Requests at or below the
// auto-approval threshold that pass every check are approved on the spot.
func (s *Service) Submit(ctx context.Context, req overtime.SubmitOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if !emp.IsActive() {
		return overtime.OvertimeResponse{}, employee.ErrEmployeeInactive
	}
	if !s.classifier.IsRankAndFile(emp) {
		return overtime.OvertimeResponse{}, overtime.ErrNotRankAndFile
	}

	date, _ := validator.IsValidDate(req.Date)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	startMin, _ := validator.IsValidClock(req.StartTime)
	endMin, _ := validator.IsValidClock(req.EndTime)

	start := date.Add(time.Duration(startMin) * time.Minute)
	end := date.Add(time.Duration(endMin) * time.Minute)

	if endMin <= startMin {
		return overtime.OvertimeResponse{}, overtime.ErrEndBeforeStart
	}
	if startMin < s.standardEndMin {
		return overtime.OvertimeResponse{}, overtime.ErrBeforeShiftEnd
	}

	hours := decimal.NewFromInt(int64(endMin - startMin)).
		Div(decimal.NewFromInt(60)).
		Round(s.hourScale)
	if hours.GreaterThan(s.dailyCapHours) {
		return overtime.OvertimeResponse{}, overtime.ErrExceedsDailyCap
	}

	today := s.today()
	if date.Before(today) {
		return overtime.OvertimeResponse{}, overtime.ErrPastDate
	}

	hasLeave, err := s.leaveRepo.HasApprovedLeaveOnDate(ctx, emp.ID, date)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to check leave conflicts: %w", err)
	}
	if hasLeave {
		return overtime.OvertimeResponse{}, overtime.ErrLeaveConflict
	}

	hourlyRate, err := emp.HourlyRate(s.workingDaysPerMonth, s.hoursPerDay, s.moneyScale)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	request := overtime.OvertimeRequest{
		ID:                     uuid.NewString(),
		EmployeeID:             emp.ID,
		Date:                   date,
		StartTime:              start,
		EndTime:                end,
		Reason:                 req.Reason,
		Status:                 overtime.StatusPending,
		Hours:                  hours,
		Pay:                    s.payPolicy.PayFor(date, hours, hourlyRate),
		RequiresHigherApproval: hours.GreaterThan(s.escalationHours),
	}

	// Short windows skip manual approval entirely.
	if hours.LessThanOrEqual(s.autoApproveHours) {
		request.Status = overtime.StatusApproved
		decidedAt := s.now()
		request.DecidedAt = &decidedAt
	}

	created, err := s.overtimeRepo.Create(ctx, request)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return toResponse(created), nil
}

// Approve moves a pending request to approved. The transition is a
// compare-and-set on pending status so two racing approvals cannot both win.
func (s *Service) Approve(ctx context.Context, id, decidedBy string) (overtime.OvertimeResponse, error) {
	affected, err := s.overtimeRepo.DecideIfPending(ctx, id, overtime.StatusApproved, decidedBy, nil, s.now())
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to approve overtime request: %w", err)
	}
	return s.afterDecision(ctx, id, affected)
}

// Reject moves a pending request to rejected. A reason is mandatory.
func (s *Service) Reject(ctx context.Context, id, decidedBy, reason string) (overtime.OvertimeResponse, error) {
	if validator.IsEmpty(reason) {
		return overtime.OvertimeResponse{}, overtime.ErrRejectReasonMissing
	}

	affected, err := s.overtimeRepo.DecideIfPending(ctx, id, overtime.StatusRejected, decidedBy, &reason, s.now())
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to reject overtime request: %w", err)
	}
	return s.afterDecision(ctx, id, affected)
}

func (s *Service) afterDecision(ctx context.Context, id string, affected int64) (overtime.OvertimeResponse, error) {
	request, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if affected == 0 {
		return overtime.OvertimeResponse{}, overtime.ErrAlreadyProcessed
	}
	return toResponse(request), nil
}

// Cancel withdraws a pending request, or an approved one whose window has
// not yet begun.
func (s *Service) Cancel(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	request, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	switch request.Status {
	case overtime.StatusPending:
		// Always cancellable.
	case overtime.StatusApproved:
		if request.HasStarted(s.now()) {
			return overtime.OvertimeResponse{}, overtime.ErrCannotCancelStarted
		}
	default:
		return overtime.OvertimeResponse{}, overtime.ErrAlreadyProcessed
	}

	if err := s.overtimeRepo.Cancel(ctx, id, s.now()); err != nil {
		if errors.Is(err, overtime.ErrAlreadyProcessed) {
			return overtime.OvertimeResponse{}, overtime.ErrAlreadyProcessed
		}
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to cancel overtime request: %w", err)
	}

	request.Status = overtime.StatusCancelled
	return toResponse(request), nil
}

func (s *Service) Get(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	request, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return toResponse(request), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.OvertimeResponse, error) {
	requests, err := s.overtimeRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	result := make([]overtime.OvertimeResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, toResponse(r))
	}
	return result, nil
}

func (s *Service) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

func toResponse(r overtime.OvertimeRequest) overtime.OvertimeResponse {
	return overtime.OvertimeResponse{
		ID:                     r.ID,
		EmployeeID:             r.EmployeeID,
		Date:                   r.Date.Format("2006-01-02"),
		StartTime:              r.StartTime.Format("15:04"),
		EndTime:                r.EndTime.Format("15:04"),
		Reason:                 r.Reason,
		Status:                 string(r.Status),
		Hours:                  r.Hours,
		Pay:                    r.Pay,
		RequiresHigherApproval: r.RequiresHigherApproval,
		RejectionReason:        r.RejectionReason,
	}
}
