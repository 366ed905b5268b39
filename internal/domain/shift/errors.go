package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrUserNotEligible  = errors.New("user must be assigned to a company and branch to be scheduled")
	ErrShiftExistsOnDay = errors.New("user already has a shift on this day")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
