package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Upsert implements attendance.AttendanceRepository. One row per employee
// per day; re-punching a day overwrites the punches and derived metrics.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, time_in, time_out,
			worked_hours, late_hours, overtime_hours, undertime_hours, incomplete,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			time_in = EXCLUDED.time_in,
			time_out = EXCLUDED.time_out,
			worked_hours = EXCLUDED.worked_hours,
			late_hours = EXCLUDED.late_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			undertime_hours = EXCLUDED.undertime_hours,
			incomplete = EXCLUDED.incomplete,
			updated_at = NOW()
		RETURNING id, employee_id, date, time_in, time_out,
			worked_hours, late_hours, overtime_hours, undertime_hours, incomplete,
			created_at, updated_at
	`

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.TimeIn, record.TimeOut,
		record.Metrics.WorkedHours, record.Metrics.LateHours,
		record.Metrics.OvertimeHours, record.Metrics.UndertimeHours,
		record.Metrics.Incomplete,
	))
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return saved, nil
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, time_in, time_out,
			   worked_hours, late_hours, overtime_hours, undertime_hours, incomplete,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, time_in, time_out,
			   worked_hours, late_hours, overtime_hours, undertime_hours, incomplete,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0)
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var record attendance.AttendanceRecord
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.TimeIn, &record.TimeOut,
		&record.Metrics.WorkedHours, &record.Metrics.LateHours,
		&record.Metrics.OvertimeHours, &record.Metrics.UndertimeHours,
		&record.Metrics.Incomplete,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}
