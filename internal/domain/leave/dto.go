package leave

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

type LeaveResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name,omitempty"`
	Type         string     `json:"type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Days         int        `json:"days"`
	Reason       *string    `json:"reason,omitempty"`
	Status       string     `json:"status"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	RejectReason *string    `json:"reject_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToResponse(l LeaveRequest) LeaveResponse {
	start := l.StartDate.Format("2006-01-02")
	end := l.EndDate.Format("2006-01-02")
	return LeaveResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Type:         string(l.Type),
		StartDate:    start,
		EndDate:      end,
		Days:         inclusiveDays(start, end),
		Reason:       l.Reason,
		Status:       string(l.Status),
		ReviewedBy:   l.ReviewedBy,
		ReviewedAt:   l.ReviewedAt,
		RejectReason: l.RejectReason,
		CreatedAt:    l.CreatedAt,
	}
}

func inclusiveDays(start, end string) int {
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

type ListLeavesQuery struct {
	UserID    string `json:"user_id"`
	Status    string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	CompanyID string `json:"company_id"`
}

func (q *ListLeavesQuery) Validate() error {
	return validator.Struct(q).Err()
}

type CreateLeaveRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	Type      string  `json:"type" validate:"required,oneof=annual unpaid sick other"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if len(errs) == 0 && r.EndDate < r.StartDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs.Err()
}

type RejectLeaveRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason" validate:"required,max=1000"`
}

func (r *RejectLeaveRequest) Validate() error {
	errs := validator.Struct(r)

	if len(errs) == 0 && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	return errs.Err()
}
