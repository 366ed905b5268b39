package shift

import "time"

type Type string

const (
	TypeNormal   Type = "normal"
	TypeNight    Type = "night"
	TypeOvertime Type = "overtime"
)

// Shift is one planned working block for a user on a calendar day.
// Date is midnight of that day in the application time zone.
type Shift struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Type      Type
	CreatedAt time.Time
}

// DayKey returns the shift's calendar day as YYYY-MM-DD.
func (s Shift) DayKey() string {
	return s.Date.Format("2006-01-02")
}
