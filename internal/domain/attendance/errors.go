package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrTimeOutBeforeTimeIn = errors.New("time-out is before time-in")
)
