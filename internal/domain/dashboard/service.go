package dashboard

import "context"

// DashboardService defines the interface for live dashboard operations
type DashboardService interface {
	// Live returns a one-shot classification of today's attendance
	Live(ctx context.Context, query LiveQuery) (LiveStatsResponse, error)

	// Watch calls onChange with a fresh classification now and after every attendance
	// change today, until ctx is done.
	Watch(ctx context.Context, query LiveQuery, onChange func(LiveStatsResponse)) error
}
