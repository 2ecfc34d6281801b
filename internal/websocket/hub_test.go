package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatHubDeliversToSectionSubscribers(t *testing.T) {
	hub := NewSeatHub(zerolog.Nop())

	ch, cancel := hub.Subscribe(7)
	defer cancel()

	hub.Publish(7, 30, 12)

	select {
	case update := <-ch:
		assert.Equal(t, EventSeats, update.Event)
		assert.Equal(t, int64(7), update.SectionID)
		assert.Equal(t, 30, update.Capacity)
		assert.Equal(t, 12, update.Enrolled)
		assert.Equal(t, 18, update.Remaining)
	case <-time.After(time.Second):
		t.Fatal("expected a seat update")
	}
}

func TestSeatHubScopesBySection(t *testing.T) {
	hub := NewSeatHub(zerolog.Nop())

	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(2, 10, 1)

	select {
	case <-ch:
		t.Fatal("subscriber of section 1 must not see section 2 updates")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSeatHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewSeatHub(zerolog.Nop())

	ch, cancel := hub.Subscribe(3)
	cancel()

	hub.Publish(3, 10, 5)

	select {
	case _, ok := <-ch:
		require.False(t, ok, "no update should arrive after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSeatHubSkipsSlowSubscriber(t *testing.T) {
	hub := NewSeatHub(zerolog.Nop())

	ch, cancel := hub.Subscribe(5)
	defer cancel()

	// Fill the buffer, then keep publishing. Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			hub.Publish(5, 10, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.NotEmpty(t, ch)
}
