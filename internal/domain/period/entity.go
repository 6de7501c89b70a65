package period

import "time"

type PayPeriod struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p PayPeriod) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidPeriod
	}
	return nil
}

// CalendarDays counts every day in [StartDate, EndDate], inclusive.
func (p PayPeriod) CalendarDays() int {
	if p.EndDate.Before(p.StartDate) {
		return 0
	}
	start := truncateToDay(p.StartDate)
	end := truncateToDay(p.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

// WorkingDays counts Monday through Friday in [StartDate, EndDate], inclusive.
func (p PayPeriod) WorkingDays() int {
	if p.EndDate.Before(p.StartDate) {
		return 0
	}
	count := 0
	for d := truncateToDay(p.StartDate); !d.After(truncateToDay(p.EndDate)); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// Contains reports whether the date falls inside the period.
func (p PayPeriod) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
