package attendance

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

// EventRequest records one attendance event for a user. Location is optional for breaks.
type EventRequest struct {
	UserID   string   `json:"uid" validate:"required"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng      *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Accuracy *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
}

func (r *EventRequest) Validate() error {
	errs := validator.Struct(r)

	if (r.Lat == nil) != (r.Lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "lat",
			Message: "lat and lng must be provided together",
		})
	}

	return errs.Err()
}

// Location returns the event position, or nil when none was sent.
func (r *EventRequest) Location() *Location {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &Location{Lat: *r.Lat, Lng: *r.Lng, Accuracy: r.Accuracy}
}

type ListDayQuery struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Search    string `json:"q"`
	Status    string `json:"status" validate:"omitempty,oneof=idle working on_break completed"`
	SortBy    string `json:"sort" validate:"omitempty,oneof=name check_in check_out status"`
	SortOrder string `json:"dir" validate:"omitempty,oneof=asc desc"`
	CompanyID string `json:"company_id"`
}

func (q *ListDayQuery) Validate() error {
	errs := validator.Struct(q)

	if q.SortBy == "" {
		q.SortBy = "name"
	}
	if q.SortOrder == "" {
		q.SortOrder = "asc"
	}

	return errs.Err()
}

type BreakResponse struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type AttendanceResponse struct {
	ID               string          `json:"id"`
	UserID           string          `json:"uid"`
	UserName         string          `json:"user_name,omitempty"`
	Date             string          `json:"date"`
	CheckInAt        *time.Time      `json:"check_in_at,omitempty"`
	CheckOutAt       *time.Time      `json:"check_out_at,omitempty"`
	Breaks           []BreakResponse `json:"breaks"`
	CheckInLocation  *Location       `json:"check_in_location,omitempty"`
	CheckOutLocation *Location       `json:"check_out_location,omitempty"`
	DistanceMeters   *float64        `json:"distance_meters,omitempty"`
	Status           string          `json:"status"`
	WorkedHours      *float64        `json:"worked_hours,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	breaks := make([]BreakResponse, 0, len(a.Breaks))
	for _, b := range a.Breaks {
		breaks = append(breaks, BreakResponse{Start: b.Start, End: b.End})
	}

	resp := AttendanceResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		Date:             a.Date,
		CheckInAt:        a.CheckInAt,
		CheckOutAt:       a.CheckOutAt,
		Breaks:           breaks,
		CheckInLocation:  a.CheckInLocation,
		CheckOutLocation: a.CheckOutLocation,
		Status:           string(a.Status),
		UpdatedAt:        a.UpdatedAt,
	}
	if hours, ok := a.WorkedHours(); ok {
		resp.WorkedHours = &hours
	}
	return resp
}
