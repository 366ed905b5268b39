package dashboard

const (
	// Topic carries dashboard-wide notifications that are not tied to one day.
	Topic = "dashboard"
	// EventDayChanged is published when the calendar day rolls over in the application time zone.
	// Data holds the new YYYY-MM-DD day.
	EventDayChanged = "dashboard.day_changed"
	// EventSnapshot names the SSE event carrying a LiveStatsResponse.
	EventSnapshot = "dashboard"
)
