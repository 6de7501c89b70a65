package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPolicy prices approved overtime. A distinct multiplier applies on
// configured holidays (recurring "MM-DD" dates).
type PayPolicy struct {
	Multiplier        decimal.Decimal
	HolidayMultiplier decimal.Decimal
	holidays          map[string]struct{}
	MoneyScale        int32
}

func NewPayPolicy(multiplier, holidayMultiplier decimal.Decimal, holidays []string, moneyScale int32) PayPolicy {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h] = struct{}{}
	}
	return PayPolicy{
		Multiplier:        multiplier,
		HolidayMultiplier: holidayMultiplier,
		holidays:          set,
		MoneyScale:        moneyScale,
	}
}

func (p PayPolicy) IsHoliday(date time.Time) bool {
	_, ok := p.holidays[date.Format("01-02")]
	return ok
}

// PayFor prices an overtime window: hours x hourly rate x multiplier.
func (p PayPolicy) PayFor(date time.Time, hours, hourlyRate decimal.Decimal) decimal.Decimal {
	multiplier := p.Multiplier
	if p.IsHoliday(date) {
		multiplier = p.HolidayMultiplier
	}
	return hours.Mul(hourlyRate).Mul(multiplier).Round(p.MoneyScale)
}
