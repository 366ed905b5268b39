package user

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	CompanyID *string    `json:"company_id,omitempty"`
	BranchID  *string    `json:"branch_id,omitempty"`
	Country   string     `json:"country"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Country:   u.Country,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role" validate:"required,oneof=employee admin manager"`
	CompanyID *string `json:"company_id,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
	Country   string  `json:"country" validate:"omitempty,max=100"`
}

func (r *CreateUserRequest) Validate() error {
	errs := validator.Struct(r)

	if r.BranchID != nil && *r.BranchID != "" && (r.CompanyID == nil || *r.CompanyID == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id requires company_id",
		})
	}

	return errs.Err()
}

// UpdateUserRequest represents request to update user. Nil fields are left unchanged.
type UpdateUserRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=employee admin manager"`
	CompanyID *string `json:"company_id,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
	Country   *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=active passive"`

	// ClearBranch is set by the service when the company changes without a new branch.
	ClearBranch bool `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	return errs.Err()
}
