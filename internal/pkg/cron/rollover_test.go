package cron

import (
	"context"
	"testing"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRollover_PublishesOncePerDay(t *testing.T) {
	hub := sse.NewHub()
	events, cleanup := hub.Subscribe(dashboard.Topic)
	defer cleanup()

	clock := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	job := NewDayRollover(hub, time.UTC)
	job.lastDay = "2026-10-16"
	job.now = func() time.Time { return clock }

	require.NoError(t, job.Check(context.Background()))
	assert.Len(t, events, 0)

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, job.Check(context.Background()))
	require.NoError(t, job.Check(context.Background()))

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, dashboard.EventDayChanged, ev.Event)
	assert.Equal(t, "2026-10-17", ev.Data)
}

func TestScheduler_RunOnceAndStop(t *testing.T) {
	s := NewScheduler()

	runs := make(chan string, 4)
	s.AddJob("heartbeat", time.Hour, func(ctx context.Context) error {
		runs <- "heartbeat"
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, "heartbeat", <-runs)

	s.Start(context.Background())
	select {
	case name := <-runs:
		assert.Equal(t, "heartbeat", name)
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
