package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusWorking   Status = "working"
	StatusOnBreak   Status = "on_break"
	StatusCompleted Status = "completed"
)

// Attendance is one user's record for a calendar day. There is at most one per (UserID, Date).
type Attendance struct {
	ID               string
	UserID           string
	Date             string // YYYY-MM-DD in the application time zone
	CheckInAt        *time.Time
	CheckOutAt       *time.Time
	Breaks           Breaks
	CheckInLocation  *Location
	CheckOutLocation *Location
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Break is a pause within a working day. A nil End means the break is in progress.
type Break struct {
	Start time.Time  `json:"start" bson:"start"`
	End   *time.Time `json:"end,omitempty" bson:"end,omitempty"`
}

type Breaks []Break

// Open returns the index of the break in progress, or -1.
func (b Breaks) Open() int {
	for i := range b {
		if b[i].End == nil {
			return i
		}
	}
	return -1
}

// Value implements driver.Valuer for database storage
func (b Breaks) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for database retrieval
func (b *Breaks) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("failed to scan Breaks: invalid type")
	}
}

type Location struct {
	Lat      float64  `json:"lat" bson:"lat"`
	Lng      float64  `json:"lng" bson:"lng"`
	Accuracy *float64 `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
}

// WorkedHours returns the hours between check-in and check-out, or 0 when either is missing.
func (a Attendance) WorkedHours() (float64, bool) {
	if a.CheckInAt == nil || a.CheckOutAt == nil {
		return 0, false
	}
	return a.CheckOutAt.Sub(*a.CheckInAt).Hours(), true
}
