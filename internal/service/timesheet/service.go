package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine turns a raw punch pair into worked/late/overtime/undertime hours.
// All clock rules come from configuration; the engine holds them parsed to
// minutes from midnight.
type Engine struct {
	repo attendance.AttendanceRepository

	standardStartMin int
	standardEndMin   int
	graceCutoffMin   int
	lunchBreakMin    int
	hoursPerDay      int
	hourScale        int32
	location         *time.Location
}

func NewEngine(cfg config.PayrollConfig, repo attendance.AttendanceRepository) (*Engine, error) {
	standardStart, ok := validator.IsValidClock(cfg.StandardStart)
	if !ok {
		return nil, fmt.Errorf("invalid standard start time %q", cfg.StandardStart)
	}
	standardEnd, ok := validator.IsValidClock(cfg.StandardEnd)
	if !ok {
		return nil, fmt.Errorf("invalid standard end time %q", cfg.StandardEnd)
	}
	graceCutoff, ok := validator.IsValidClock(cfg.GraceCutoff)
	if !ok {
		return nil, fmt.Errorf("invalid grace cutoff time %q", cfg.GraceCutoff)
	}
	if graceCutoff < standardStart {
		return nil, fmt.Errorf("grace cutoff %q precedes standard start %q", cfg.GraceCutoff, cfg.StandardStart)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &Engine{
		repo:             repo,
		standardStartMin: standardStart,
		standardEndMin:   standardEnd,
		graceCutoffMin:   graceCutoff,
		lunchBreakMin:    cfg.LunchBreakMinutes,
		hoursPerDay:      cfg.HoursPerDay,
		hourScale:        cfg.HourScale,
		location:         loc,
	}, nil
}

// ComputeMetrics derives the time accounting for one punch pair. A missing
// punch yields zero metrics flagged incomplete; a time-out before time-in is
// rejected outright, never clamped.
func (e *Engine) ComputeMetrics(timeIn, timeOut *time.Time) (attendance.Metrics, error) {
	if timeIn == nil || timeOut == nil {
		return attendance.IncompleteMetrics(), nil
	}
	if timeOut.Before(*timeIn) {
		return attendance.Metrics{}, attendance.ErrTimeOutBeforeTimeIn
	}

	inMin := minutesFromMidnight(*timeIn)
	outMin := minutesFromMidnight(*timeOut)

	metrics := attendance.ZeroMetrics()

	workedMin := int(timeOut.Sub(*timeIn).Minutes()) - e.lunchBreakMin
	if workedMin < 0 {
		workedMin = 0
	}
	metrics.WorkedHours = minutesToHours(workedMin, e.hourScale)

	// Lateness counts from standard start, not from the cutoff, but only
	// once the cutoff has been passed.
	if inMin > e.graceCutoffMin {
		metrics.LateHours = minutesToHours(inMin-e.standardStartMin, e.hourScale)
	}

	overtime := metrics.WorkedHours.Sub(decimal.NewFromInt(int64(e.hoursPerDay)))
	if overtime.IsPositive() {
		metrics.OvertimeHours = overtime
	}

	if outMin < e.standardEndMin {
		metrics.UndertimeHours = minutesToHours(e.standardEndMin-outMin, e.hourScale)
	}

	return metrics, nil
}

// RecordPunches stores a punch pair with freshly derived metrics. Changing
// either punch reruns the whole derivation; stored metrics are never patched.
func (e *Engine) RecordPunches(ctx context.Context, req attendance.RecordPunchesRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, e.location)

	timeIn, err := e.punchTime(date, req.TimeIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	timeOut, err := e.punchTime(date, req.TimeOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	metrics, err := e.ComputeMetrics(timeIn, timeOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.AttendanceRecord{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		TimeIn:     timeIn,
		TimeOut:    timeOut,
		Metrics:    metrics,
	}

	stored, err := e.repo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to store attendance record: %w", err)
	}

	return toResponse(stored), nil
}

func (e *Engine) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := e.repo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, toResponse(r))
	}
	return result, nil
}

// LateHoursInRange sums late hours over a date range. Incomplete records
// contribute nothing since their metrics are zeroed.
func (e *Engine) LateHoursInRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	records, err := e.repo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list attendance records: %w", err)
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Metrics.LateHours)
	}
	return total, nil
}

func (e *Engine) punchTime(date time.Time, clock *string) (*time.Time, error) {
	if clock == nil {
		return nil, nil
	}
	minutes, ok := validator.IsValidClock(*clock)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "punch", Message: "must be a valid clock time (HH:MM)"}}
	}
	t := date.Add(time.Duration(minutes) * time.Minute)
	return &t, nil
}

func toResponse(r attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Date:           r.Date.Format("2006-01-02"),
		TimeIn:         clockPtr(r.TimeIn),
		TimeOut:        clockPtr(r.TimeOut),
		WorkedHours:    r.Metrics.WorkedHours,
		LateHours:      r.Metrics.LateHours,
		OvertimeHours:  r.Metrics.OvertimeHours,
		UndertimeHours: r.Metrics.UndertimeHours,
		Incomplete:     r.Metrics.Incomplete,
	}
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	clock := t.Format("15:04")
	return &clock
}

func minutesFromMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func minutesToHours(minutes int, scale int32) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(scale)
}
