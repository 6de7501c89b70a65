package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Upsert(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
}
