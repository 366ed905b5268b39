package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
)

// DayRollover announces the start of a new calendar day in loc on the dashboard topic, so live
// dashboard streams move to the new day's attendance feed.
type DayRollover struct {
	hub *sse.Hub
	loc *time.Location
	now func() time.Time

	mu      sync.Mutex
	lastDay string
}

func NewDayRollover(hub *sse.Hub, loc *time.Location) *DayRollover {
	return &DayRollover{
		hub:     hub,
		loc:     loc,
		now:     time.Now,
		lastDay: time.Now().In(loc).Format("2006-01-02"),
	}
}

func (j *DayRollover) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("dashboard_day_rollover", time.Minute, j.Check)
}

// Check publishes dashboard.EventDayChanged when the day differs from the last one seen.
func (j *DayRollover) Check(ctx context.Context) error {
	today := j.now().In(j.loc).Format("2006-01-02")

	j.mu.Lock()
	changed := today != j.lastDay
	j.lastDay = today
	j.mu.Unlock()

	if !changed {
		return nil
	}

	slog.Info("day rolled over", "date", today, "subscribers", j.hub.SubscriberCount(dashboard.Topic))
	j.hub.Publish(dashboard.Topic, sse.Event{Event: dashboard.EventDayChanged, Data: today})
	return nil
}
