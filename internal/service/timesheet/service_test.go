package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayrollConfig() config.PayrollConfig {
	return config.PayrollConfig{
		Timezone:            "UTC",
		StandardStart:       "08:00",
		StandardEnd:         "17:00",
		GraceCutoff:         "08:10",
		LunchBreakMinutes:   60,
		WorkingDaysPerMonth: 21,
		HoursPerDay:         8,
		MoneyScale:          2,
		HourScale:           2,
	}
}

type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord // keyed employeeID + date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if existing, ok := f.records[f.key(record.EmployeeID, record.Date)]; ok {
		record.ID = existing.ID
	}
	f.records[f.key(record.EmployeeID, record.Date)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	record, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var result []attendance.AttendanceRecord
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func punchAt(t *testing.T, clock string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+clock)
	require.NoError(t, err)
	return &parsed
}

func TestComputeMetrics(t *testing.T) {
	engine, err := NewEngine(testPayrollConfig(), newFakeAttendanceRepo())
	require.NoError(t, err)

	tests := []struct {
		name      string
		timeIn    string
		timeOut   string
		worked    string
		late      string
		overtime  string
		undertime string
	}{
		{
			name:   "on time full day",
			timeIn: "08:00", timeOut: "17:00",
			worked: "8", late: "0", overtime: "0", undertime: "0",
		},
		{
			name:   "late past grace with overtime",
			timeIn: "08:15", timeOut: "17:30",
			worked: "8.25", late: "0.25", overtime: "0.25", undertime: "0",
		},
		{
			name:   "inside grace period is not late",
			timeIn: "08:10", timeOut: "17:00",
			worked: "7.83", late: "0", overtime: "0", undertime: "0",
		},
		{
			name:   "one minute past grace counts from standard start",
			timeIn: "08:11", timeOut: "17:00",
			worked: "7.82", late: "0.18", overtime: "0", undertime: "0",
		},
		{
			name:   "early departure accrues undertime",
			timeIn: "08:00", timeOut: "16:00",
			worked: "7", late: "0", overtime: "0", undertime: "1",
		},
		{
			name:   "short shift floors worked hours at zero",
			timeIn: "08:00", timeOut: "08:30",
			worked: "0", late: "0", overtime: "0", undertime: "8.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics, err := engine.ComputeMetrics(punchAt(t, tt.timeIn), punchAt(t, tt.timeOut))
			require.NoError(t, err)
			assert.False(t, metrics.Incomplete)
			assert.True(t, metrics.WorkedHours.Equal(decimal.RequireFromString(tt.worked)), "worked: got %s", metrics.WorkedHours)
			assert.True(t, metrics.LateHours.Equal(decimal.RequireFromString(tt.late)), "late: got %s", metrics.LateHours)
			assert.True(t, metrics.OvertimeHours.Equal(decimal.RequireFromString(tt.overtime)), "overtime: got %s", metrics.OvertimeHours)
			assert.True(t, metrics.UndertimeHours.Equal(decimal.RequireFromString(tt.undertime)), "undertime: got %s", metrics.UndertimeHours)
		})
	}
}

func TestComputeMetricsMissingPunch(t *testing.T) {
	engine, err := NewEngine(testPayrollConfig(), newFakeAttendanceRepo())
	require.NoError(t, err)

	metrics, err := engine.ComputeMetrics(nil, punchAt(t, "17:00"))
	require.NoError(t, err)
	assert.True(t, metrics.Incomplete)
	assert.True(t, metrics.WorkedHours.IsZero())
	assert.True(t, metrics.LateHours.IsZero())

	metrics, err = engine.ComputeMetrics(punchAt(t, "08:00"), nil)
	require.NoError(t, err)
	assert.True(t, metrics.Incomplete)
	assert.True(t, metrics.WorkedHours.IsZero())
}

func TestComputeMetricsRejectsInvertedPunches(t *testing.T) {
	engine, err := NewEngine(testPayrollConfig(), newFakeAttendanceRepo())
	require.NoError(t, err)

	_, err = engine.ComputeMetrics(punchAt(t, "17:00"), punchAt(t, "08:00"))
	assert.ErrorIs(t, err, attendance.ErrTimeOutBeforeTimeIn)
}

func TestNewEngineRejectsBadClocks(t *testing.T) {
	cfg := testPayrollConfig()
	cfg.GraceCutoff = "07:55" // before standard start
	_, err := NewEngine(cfg, newFakeAttendanceRepo())
	assert.Error(t, err)

	cfg = testPayrollConfig()
	cfg.StandardStart = "8am"
	_, err = NewEngine(cfg, newFakeAttendanceRepo())
	assert.Error(t, err)
}

func TestRecordPunchesRecomputesOnChange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	engine, err := NewEngine(testPayrollConfig(), repo)
	require.NoError(t, err)
	ctx := context.Background()

	timeIn := "08:15"
	timeOut := "17:30"
	first, err := engine.RecordPunches(ctx, attendance.RecordPunchesRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		TimeIn:     &timeIn,
		TimeOut:    &timeOut,
	})
	require.NoError(t, err)
	assert.True(t, first.LateHours.Equal(decimal.RequireFromString("0.25")))

	// Corrected punch wipes and rederives the metrics.
	correctedIn := "08:00"
	second, err := engine.RecordPunches(ctx, attendance.RecordPunchesRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		TimeIn:     &correctedIn,
		TimeOut:    &timeOut,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.LateHours.IsZero())
	assert.True(t, second.OvertimeHours.Equal(decimal.RequireFromString("0.5")))
}

func TestRecordPunchesIncomplete(t *testing.T) {
	engine, err := NewEngine(testPayrollConfig(), newFakeAttendanceRepo())
	require.NoError(t, err)

	timeIn := "08:00"
	resp, err := engine.RecordPunches(context.Background(), attendance.RecordPunchesRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		TimeIn:     &timeIn,
	})
	require.NoError(t, err)
	assert.True(t, resp.Incomplete)
	assert.True(t, resp.WorkedHours.IsZero())
}
