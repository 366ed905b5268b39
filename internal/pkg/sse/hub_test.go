package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishDeliversToTopicSubscribersOnly(t *testing.T) {
	hub := NewHub()

	today, cleanupToday := hub.Subscribe("attendance:2026-10-18")
	defer cleanupToday()
	other, cleanupOther := hub.Subscribe("attendance:2026-10-17")
	defer cleanupOther()

	hub.Publish("attendance:2026-10-18", Event{Event: "attendance.changed", Data: "u1"})

	select {
	case ev := <-today:
		assert.Equal(t, "attendance:2026-10-18", ev.Topic)
		assert.Equal(t, "attendance.changed", ev.Event)
		assert.Equal(t, "u1", ev.Data)
	default:
		t.Fatal("expected event on subscribed topic")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	default:
	}
}

func TestHub_CleanupRemovesSubscriberAndClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("t")
	require.Equal(t, 1, hub.SubscriberCount("t"))

	cleanup()
	cleanup()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount("t"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("t")
	defer cleanup()

	for i := 0; i < 50; i++ {
		hub.Publish("t", Event{Event: "attendance.changed"})
	}
	assert.Equal(t, 1, hub.TotalSubscribers())
}
