package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord is one employee-day of raw punches plus the metrics
// derived from them. Metrics are recomputed from scratch whenever a punch
// changes; they are never patched incrementally.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	Metrics    Metrics
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Metrics is the derived time accounting for a single punch pair.
type Metrics struct {
	WorkedHours    decimal.Decimal
	LateHours      decimal.Decimal
	OvertimeHours  decimal.Decimal
	UndertimeHours decimal.Decimal
	Incomplete     bool
}

func ZeroMetrics() Metrics {
	return Metrics{
		WorkedHours:    decimal.Zero,
		LateHours:      decimal.Zero,
		OvertimeHours:  decimal.Zero,
		UndertimeHours: decimal.Zero,
	}
}

// IncompleteMetrics marks a record with a missing punch. All figures are
// zero; the flag keeps it distinguishable from a clean zero-hour day.
func IncompleteMetrics() Metrics {
	m := ZeroMetrics()
	m.Incomplete = true
	return m
}
