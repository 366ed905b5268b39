package branch

import "errors"

var (
	ErrBranchNotFound    = errors.New("branch not found")
	ErrCompanyIDRequired = errors.New("company_id is required")
)
