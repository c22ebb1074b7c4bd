package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFanOut(t *testing.T) {
	n := NewNotificationService(zerolog.Nop())
	a, b := n.Subscribe(), n.Subscribe()
	assert.Equal(t, 2, n.Subscribers())

	n.MediaCountChanged(3)
	for _, sub := range []*Subscriber{a, b} {
		event := <-sub.Events()
		assert.Equal(t, MediaEvent{Event: EventMediaCount, Count: 3}, event)
	}

	n.Unsubscribe(a)
	n.Unsubscribe(a)
	_, open := <-a.Events()
	assert.False(t, open)
	assert.Equal(t, 1, n.Subscribers())
}

func TestNotificationDropsForSlowSubscriber(t *testing.T) {
	n := NewNotificationService(zerolog.Nop())
	sub := n.Subscribe()
	for i := 0; i < 20; i++ {
		n.MediaCountChanged(int64(i))
	}
	require.Len(t, sub.Events(), cap(sub.send))
	first := <-sub.Events()
	assert.EqualValues(t, 0, first.Count)
}
