package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrBranchCompanyMismatch   = errors.New("branch does not belong to the selected company")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrOtherCompany            = errors.New("user belongs to another company")
)
