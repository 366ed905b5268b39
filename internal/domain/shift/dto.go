package shift

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

type ShiftResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Type      string    `json:"type"`
	Hours     float64   `json:"hours"`
	Overnight bool      `json:"overnight"`
	CreatedAt time.Time `json:"created_at"`
}

// ListShiftsQuery selects shifts in an inclusive YYYY-MM-DD range.
type ListShiftsQuery struct {
	From   string `json:"from" validate:"required,datetime=2006-01-02"`
	To     string `json:"to" validate:"required,datetime=2006-01-02"`
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
}

func (q *ListShiftsQuery) Validate() error {
	errs := validator.Struct(q)

	if len(errs) == 0 && q.From > q.To {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must not be after to",
		})
	}

	return errs.Err()
}

type CreateShiftRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
	Type      string `json:"type" validate:"omitempty,oneof=normal night overtime"`
}

func (r *CreateShiftRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Type == "" {
		r.Type = string(TypeNormal)
	}

	return errs.Err()
}

// UpdateShiftRequest edits the times or type of a shift. Nil fields are left unchanged.
type UpdateShiftRequest struct {
	ID        string  `json:"-"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,clock"`
	Type      *string `json:"type,omitempty" validate:"omitempty,oneof=normal night overtime"`
}

func (r *UpdateShiftRequest) Validate() error {
	errs := validator.Struct(r)

	if r.StartTime == nil && r.EndTime == nil && r.Type == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one of start_time, end_time or type is required",
		})
	}

	return errs.Err()
}

// WeekPlanQuery picks the week containing Date. Empty scope fields mean all.
type WeekPlanQuery struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
}

func (q *WeekPlanQuery) Validate() error {
	return validator.Struct(q).Err()
}

type WeekPlanResponse struct {
	WeekStart string        `json:"week_start"`
	WeekEnd   string        `json:"week_end"`
	Days      []string      `json:"days"`
	Rows      []WeekPlanRow `json:"rows"`
}

// WeekPlanRow holds one user's seven cells, Monday first. A nil cell means no shift.
type WeekPlanRow struct {
	UserID     string           `json:"user_id"`
	UserName   string           `json:"user_name"`
	Cells      []*ShiftResponse `json:"cells"`
	TotalHours float64          `json:"total_hours"`
}

// CopyWeekRequest copies the week containing Week into the following week.
// CompanyID limits both weeks to that company's users, empty means all.
type CopyWeekRequest struct {
	Week      string `json:"week" validate:"required,datetime=2006-01-02"`
	Overwrite bool   `json:"overwrite"`
	CompanyID string `json:"company_id"`
}

func (r *CopyWeekRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ClearWeekRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	CompanyID string `json:"company_id"`
}

func (r *ClearWeekRequest) Validate() error {
	return validator.Struct(r).Err()
}

// BulkResult counts what a week operation achieved, including partial progress on failure.
type BulkResult struct {
	Copied   int `json:"copied"`
	Skipped  int `json:"skipped"`
	Replaced int `json:"replaced"`
	Deleted  int `json:"deleted"`
}
