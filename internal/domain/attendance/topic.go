package attendance

// EventChanged is published whenever a record of the day changes.
const EventChanged = "attendance.changed"

// Topic names the change feed of one YYYY-MM-DD day.
func Topic(date string) string {
	return "attendance:" + date
}
