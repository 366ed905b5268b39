package report

import (
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE / LEAVE GRID
// ========================================

type MonthlyReportRequest struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	return errs.Err()
}

type CellKind string

const (
	CellWorked  CellKind = "worked"
	CellOnLeave CellKind = "on_leave"
	CellNoData  CellKind = "no_data"
)

// DayCell is one (user, day) entry of the grid. Hours is only set for worked days.
type DayCell struct {
	Day   int      `json:"day"`
	Date  string   `json:"date"`
	Kind  CellKind `json:"kind"`
	Hours *float64 `json:"hours,omitempty"`
}

type UserMonth struct {
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Days       []DayCell `json:"days"`
	TotalHours float64   `json:"total_hours"`
	WorkedDays int       `json:"worked_days"`
	LeaveDays  int       `json:"leave_days"`
}

type MonthlyReport struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	DaysInMonth int         `json:"days_in_month"`
	Users       []UserMonth `json:"users"`
	GeneratedAt time.Time   `json:"generated_at"`
}
