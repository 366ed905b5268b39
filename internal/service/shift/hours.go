package shift

import (
	"strconv"
	"time"
)

// Hours returns the length of a shift in hours from two "HH:MM" clock strings.
// An end before the start yields a negative value; overnight shifts are not wrapped.
// Inputs are validated at the request boundary, malformed parts count as zero here.
func Hours(start, end string) float64 {
	return clockHours(end) - clockHours(start)
}

// IsOvernight reports whether end is earlier than start, i.e. Hours would be negative.
func IsOvernight(start, end string) bool {
	return Hours(start, end) < 0
}

func clockHours(clock string) float64 {
	if len(clock) != 5 || clock[2] != ':' {
		return 0
	}
	h, err := strconv.Atoi(clock[:2])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(clock[3:])
	if err != nil {
		return 0
	}
	return float64(h) + float64(m)/60
}

// WeekRange returns Monday 00:00:00.000 and Sunday 23:59:59.999 of the week containing t, in loc.
func WeekRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
	sunday := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return monday, sunday
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ClockOn returns the instant of an "HH:MM" clock time on day's calendar date in loc.
func ClockOn(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), true
}
