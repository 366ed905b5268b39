package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been processed")
	ErrLeaveNotDeletable     = errors.New("only pending or rejected leave requests can be deleted")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
	ErrRejectReasonRequired  = errors.New("reject reason is required")
)
