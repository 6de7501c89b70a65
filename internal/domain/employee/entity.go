package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	EmployeeCode  string
	FullName      string
	PositionTitle string
	Department    string
	MonthlySalary decimal.Decimal
	HireDate      time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// PayRuleClass gates overtime entitlement and time-based penalty deductions.
// It is derived from position text on every query, never stored: position
// assignment can change and a stale stored flag would misclassify pay.
type PayRuleClass string

const (
	ClassRankAndFile PayRuleClass = "rank_and_file"
	ClassExempt      PayRuleClass = "exempt"
)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// HourlyRate derives the hourly rate from the monthly salary. The rate is
// always rederived rather than stored so a salary change can never leave a
// stale rate behind.
func (e Employee) HourlyRate(workingDaysPerMonth, hoursPerDay int, scale int32) (decimal.Decimal, error) {
	if workingDaysPerMonth <= 0 || hoursPerDay <= 0 {
		return decimal.Zero, ErrZeroWorkingDays
	}
	if e.MonthlySalary.IsNegative() {
		return decimal.Zero, ErrNegativeSalary
	}
	hoursPerMonth := decimal.NewFromInt(int64(workingDaysPerMonth * hoursPerDay))
	return e.MonthlySalary.Div(hoursPerMonth).Round(scale), nil
}
