package company

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Country string `json:"country" validate:"required,max=100"`
}

func (r *CreateCompanyRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) && len(errs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	return errs.Err()
}

// UpdateCompanyRequest replaces both editable fields, mirroring the edit form.
type UpdateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Country string `json:"country" validate:"required,max=100"`
}

func (r *UpdateCompanyRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Name) && len(errs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	return errs.Err()
}
