package attendance

import "errors"

// Attendance domain errors
var (
	// Event errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrBreakInProgress   = errors.New("a break is already in progress")
	ErrNoBreakInProgress = errors.New("no break is in progress")
	ErrUserNotEligible   = errors.New("user must be assigned to a company and branch to record attendance")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to record attendance for this user")
)
