package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	valid := PayPeriod{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 15)}
	assert.NoError(t, valid.Validate())

	inverted := PayPeriod{StartDate: day(2026, 3, 15), EndDate: day(2026, 3, 1)}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidPeriod)

	// A single-day period is allowed.
	single := PayPeriod{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 1)}
	assert.NoError(t, single.Validate())
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"monday through friday", day(2026, 3, 2), day(2026, 3, 6), 5},
		{"full march 2026", day(2026, 3, 1), day(2026, 3, 31), 22},
		{"weekend only", day(2026, 3, 7), day(2026, 3, 8), 0},
		{"single working day", day(2026, 3, 2), day(2026, 3, 2), 1},
		{"inverted range", day(2026, 3, 6), day(2026, 3, 2), 0},
		{"two full weeks", day(2026, 3, 2), day(2026, 3, 15), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PayPeriod{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, p.WorkingDays())
		})
	}
}

func TestCalendarDays(t *testing.T) {
	p := PayPeriod{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 15)}
	assert.Equal(t, 15, p.CalendarDays())

	single := PayPeriod{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 1)}
	assert.Equal(t, 1, single.CalendarDays())
}

func TestContains(t *testing.T) {
	p := PayPeriod{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 15)}

	assert.True(t, p.Contains(day(2026, 3, 1)))
	assert.True(t, p.Contains(day(2026, 3, 15)))
	// Time-of-day on the boundary must not push a date out of the period.
	assert.True(t, p.Contains(time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(day(2026, 2, 28)))
	assert.False(t, p.Contains(day(2026, 3, 16)))
}
