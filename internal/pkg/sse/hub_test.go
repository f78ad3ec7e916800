package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("job-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("job-1")
	defer cleanup2()
	other, cleanupOther := hub.Subscribe("job-2")
	defer cleanupOther()

	hub.Publish("job-1", Event{Key: "job-1", Event: "progress", Data: 1})

	ev := <-ch1
	assert.Equal(t, "progress", ev.Event)
	ev = <-ch2
	assert.Equal(t, "progress", ev.Event)
	assert.Empty(t, other)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("job-1")
	require.Equal(t, 1, hub.SubscriberCount("job-1"))

	cleanup()
	assert.Zero(t, hub.SubscriberCount("job-1"))

	// Publishing to a key with no subscribers is a no-op.
	hub.Publish("job-1", Event{Key: "job-1", Event: "progress"})
}

func TestHub_FullChannelDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("job-1")
	defer cleanup()

	for i := 0; i < 20; i++ {
		hub.Publish("job-1", Event{Key: "job-1", Event: "progress", Data: i})
	}
	// Buffered capacity is 10; the overflow was dropped, not deadlocked.
	assert.Len(t, ch, 10)
}
