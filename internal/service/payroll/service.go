package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	deductionsvc "github.com/cmlabs-hris/payroll-engine-go/internal/service/deduction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregator builds a pay period's payroll records from attendance, approved
// overtime, leave and the deduction tables. Records for a period are rebuilt
// wholesale inside one transaction, so rerunning a period with unchanged
// inputs produces identical records.
type Aggregator struct {
	payrollRepo  payroll.PayrollRepository
	tx           payroll.TransactionBoundary
	employeeRepo employee.EmployeeRepository
	periodRepo   period.PeriodRepository
	overtimeRepo overtime.OvertimeRepository
	leaveRepo    leave.LeaveRepository
	benefitRepo  benefit.BenefitRepository
	timesheet    TimesheetSource
	deductions   *deductionsvc.Resolver
	classifier   employee.Classifier

	workingDaysPerMonth int
	hoursPerDay         int
	moneyScale          int32
	now                 func() time.Time
}

// TimesheetSource supplies the period's tardiness figure. The aggregator
// only needs the summed late hours, not the daily punch detail.
type TimesheetSource interface {
	LateHoursInRange(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}

func NewAggregator(
	cfg config.PayrollConfig,
	payrollRepo payroll.PayrollRepository,
	tx payroll.TransactionBoundary,
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PeriodRepository,
	overtimeRepo overtime.OvertimeRepository,
	leaveRepo leave.LeaveRepository,
	benefitRepo benefit.BenefitRepository,
	timesheet TimesheetSource,
	deductions *deductionsvc.Resolver,
	classifier employee.Classifier,
) *Aggregator {
	return &Aggregator{
		payrollRepo:         payrollRepo,
		tx:                  tx,
		employeeRepo:        employeeRepo,
		periodRepo:          periodRepo,
		overtimeRepo:        overtimeRepo,
		leaveRepo:           leaveRepo,
		benefitRepo:         benefitRepo,
		timesheet:           timesheet,
		deductions:          deductions,
		classifier:          classifier,
		workingDaysPerMonth: cfg.WorkingDaysPerMonth,
		hoursPerDay:         cfg.HoursPerDay,
		moneyScale:          cfg.MoneyScale,
		now:                 time.Now,
	}
}

// Generate rebuilds every payroll record for the period. One employee's
// failure never aborts the run; it is reported in the summary instead. The
// run only fails outright when nothing at all could be generated, and in
// that case the transaction rolls the delete back so the previous records
// survive.
func (a *Aggregator) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GenerationSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerationSummary{}, err
	}

	p, err := a.periodRepo.GetByID(ctx, req.PeriodID)
	if err != nil {
		return payroll.GenerationSummary{}, err
	}
	if p.WorkingDays() == 0 {
		return payroll.GenerationSummary{}, payroll.ErrZeroWorkingDays
	}

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = a.employeeRepo.GetActiveByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = a.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		return payroll.GenerationSummary{}, fmt.Errorf("failed to load employees: %w", err)
	}

	summary := payroll.GenerationSummary{PeriodID: p.ID}

	err = a.tx.Within(ctx, func(ctx context.Context) error {
		if err := a.payrollRepo.DeleteByPeriod(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to clear period records: %w", err)
		}

		for _, emp := range employees {
			record, buildErr := a.buildRecord(ctx, emp, p)
			if buildErr != nil {
				summary.Failures = append(summary.Failures, payroll.GenerationFailure{
					EmployeeID: emp.ID,
					Reason:     buildErr.Error(),
				})
				continue
			}
			if _, createErr := a.payrollRepo.Create(ctx, record); createErr != nil {
				summary.Failures = append(summary.Failures, payroll.GenerationFailure{
					EmployeeID: emp.ID,
					Reason:     createErr.Error(),
				})
				continue
			}
			summary.GeneratedCount++
		}

		if summary.GeneratedCount == 0 {
			return payroll.ErrNoRecordsGenerated
		}
		return nil
	})
	if err != nil {
		return payroll.GenerationSummary{}, err
	}

	summary.Partial = len(summary.Failures) > 0
	return summary, nil
}

func (a *Aggregator) buildRecord(ctx context.Context, emp employee.Employee, p period.PayPeriod) (payroll.PayrollRecord, error) {
	if !emp.MonthlySalary.IsPositive() {
		return payroll.PayrollRecord{}, payroll.ErrNoBaseSalary
	}

	hourlyRate, err := emp.HourlyRate(a.workingDaysPerMonth, a.hoursPerDay, a.moneyScale)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	dailyRate := emp.MonthlySalary.
		Div(decimal.NewFromInt(int64(a.workingDaysPerMonth))).
		Round(a.moneyScale)

	basic := dailyRate.Mul(decimal.NewFromInt(int64(p.WorkingDays()))).Round(a.moneyScale)

	assignments, err := a.benefitRepo.ListByPosition(ctx, emp.PositionTitle)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to load benefits: %w", err)
	}
	totalBenefits := decimal.Zero
	benefitsDetail := make(map[string]decimal.Decimal, len(assignments))
	for _, b := range assignments {
		totalBenefits = totalBenefits.Add(b.Amount)
		benefitsDetail[b.BenefitName] = benefitsDetail[b.BenefitName].Add(b.Amount)
	}

	class := a.classifier.Classify(emp.Department, emp.PositionTitle)

	// Overtime pay and the tardiness penalty only apply to rank-and-file
	// employees; exempt staff trade both away.
	overtimePay := decimal.Zero
	lateHours := decimal.Zero
	if class == employee.ClassRankAndFile {
		approved, err := a.overtimeRepo.ListApprovedInRange(ctx, emp.ID, p.StartDate, p.EndDate)
		if err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to load approved overtime: %w", err)
		}
		for _, r := range approved {
			overtimePay = overtimePay.Add(r.Pay)
		}

		lateHours, err = a.timesheet.LateHoursInRange(ctx, emp.ID, p.StartDate, p.EndDate)
		if err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to load tardiness: %w", err)
		}
	}

	leaves, err := a.leaveRepo.ListApprovedRequestsInRange(ctx, emp.ID, p.StartDate, p.EndDate)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to load leave requests: %w", err)
	}
	unpaidLeaveDays := decimal.Zero
	for _, lr := range leaves {
		if !lr.Paid {
			unpaidLeaveDays = unpaidLeaveDays.Add(unpaidDaysWithin(lr, p))
		}
	}

	gross := basic.Add(totalBenefits).Add(overtimePay).Round(a.moneyScale)

	breakdown, err := a.deductions.MandatoryDeductions(ctx, gross, &p.ID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to resolve deductions: %w", err)
	}

	tardiness := a.deductions.TardinessPenalty(class, lateHours, hourlyRate)
	unpaidLeaveHours := unpaidLeaveDays.Mul(decimal.NewFromInt(int64(a.hoursPerDay)))
	unpaidLeaveDeduction := unpaidLeaveHours.Mul(hourlyRate).Round(a.moneyScale)

	totalDeductions := breakdown.Total().Add(tardiness).Add(unpaidLeaveDeduction).Round(a.moneyScale)
	net := gross.Sub(totalDeductions)

	return payroll.PayrollRecord{
		ID:               uuid.NewString(),
		EmployeeID:       emp.ID,
		PeriodID:         p.ID,
		BasicSalary:      basic,
		TotalBenefits:    totalBenefits,
		OvertimePay:      overtimePay,
		GrossIncome:      gross,
		TotalDeductions:  totalDeductions,
		NetSalary:        net,
		DeductionsDetail: breakdown.ByKind(),
		TardinessPenalty: tardiness,
		UnpaidLeaveDays:  unpaidLeaveDays,
		BenefitsDetail:   benefitsDetail,
		CreatedAt:        a.now(),
	}, nil
}

// unpaidDaysWithin charges only the slice of a leave request that falls
// inside the pay period. A request fully contained in the period keeps its
// recorded day count, which preserves half-day bookings; one that spills
// past either boundary is charged per in-period working day instead.
func unpaidDaysWithin(lr leave.LeaveRequest, p period.PayPeriod) decimal.Decimal {
	if !lr.StartDate.Before(p.StartDate) && !lr.EndDate.After(p.EndDate) {
		return lr.Days
	}

	from := lr.StartDate
	if from.Before(p.StartDate) {
		from = p.StartDate
	}
	to := lr.EndDate
	if to.After(p.EndDate) {
		to = p.EndDate
	}

	clipped := period.PayPeriod{StartDate: from, EndDate: to}
	return decimal.NewFromInt(int64(clipped.WorkingDays()))
}

// ListByPeriod returns a period's generated records.
func (a *Aggregator) ListByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollRecordResponse, error) {
	records, err := a.payrollRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return payroll.ToRecordResponses(records), nil
}

// GetRecord returns one employee's record for a period.
func (a *Aggregator) GetRecord(ctx context.Context, employeeID, periodID string) (payroll.PayrollRecordResponse, error) {
	record, err := a.payrollRepo.GetByEmployeePeriod(ctx, employeeID, periodID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}
