package branch

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
}

func (r *CreateBranchRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) && len(errs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	return errs.Err()
}

// UpdateBranchRequest represents the request structure for renaming a branch.
type UpdateBranchRequest struct {
	ID   string `json:"-"`
	Name string `json:"name" validate:"required,max=100"`
}

func (r *UpdateBranchRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) && len(errs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	return errs.Err()
}
