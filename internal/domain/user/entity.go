package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access to every company
	RoleManager  Role = "manager"  // Plans shifts, reviews leave, watches the dashboard
	RoleEmployee Role = "employee" // Records own attendance and requests leave
)

type Status string

const (
	StatusActive  Status = "active"
	StatusPassive Status = "passive"
)

const DefaultCountry = "Turkiye"

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	Role         Role
	CompanyID    *string
	BranchID     *string
	Country      string
	Status       Status
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// IsShiftEligible reports whether the user is assigned to both a company and a branch.
// Only such users take part in scheduling and attendance views.
func (u *User) IsShiftEligible() bool {
	return u.CompanyID != nil && *u.CompanyID != "" &&
		u.BranchID != nil && *u.BranchID != ""
}

// Filter narrows user listings. Nil fields are ignored.
type Filter struct {
	CompanyID *string
	BranchID  *string
	Status    *Status
}

// Matches reports whether u satisfies every set field of f.
func (f Filter) Matches(u User) bool {
	if f.CompanyID != nil && (u.CompanyID == nil || *u.CompanyID != *f.CompanyID) {
		return false
	}
	if f.BranchID != nil && (u.BranchID == nil || *u.BranchID != *f.BranchID) {
		return false
	}
	if f.Status != nil && u.Status != *f.Status {
		return false
	}
	return true
}
