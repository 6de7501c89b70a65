package overtime

import "errors"

var (
	ErrOvertimeNotFound    = errors.New("overtime request not found")
	ErrAlreadyProcessed    = errors.New("overtime request already processed")
	ErrNotRankAndFile      = errors.New("employee is not eligible for overtime")
	ErrCrossDayWindow      = errors.New("overtime window must fall on a single calendar day")
	ErrEndBeforeStart      = errors.New("overtime end must be after start")
	ErrBeforeShiftEnd      = errors.New("overtime must start at or after standard end time")
	ErrExceedsDailyCap     = errors.New("overtime duration exceeds the daily cap")
	ErrPastDate            = errors.New("overtime date must be today or in the future")
	ErrLeaveConflict       = errors.New("approved leave exists on the requested date")
	ErrRejectReasonMissing = errors.New("rejection requires a reason")
	ErrCannotCancelStarted = errors.New("cannot cancel overtime that has started")
)
