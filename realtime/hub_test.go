package realtime

import (
	"testing"

	"coachbar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id string, n int) *models.ChatChannel {
	msgs := make([]models.ChatMessage, n)
	return &models.ChatChannel{ID: id, Messages: msgs}
}

func TestSubscribeReceivesPublishedSnapshots(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("chat-1")
	defer cancel()

	hub.Publish(snapshot("chat-1", 1))
	hub.Publish(snapshot("chat-1", 2))

	first := <-ch
	second := <-ch
	require.Len(t, first.Messages, 1)
	require.Len(t, second.Messages, 2)
}

func TestPublishIgnoresOtherChannels(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("chat-1")
	defer cancel()

	hub.Publish(snapshot("chat-2", 1))

	select {
	case got := <-ch:
		t.Fatalf("unexpected snapshot for channel %s", got.ID)
	default:
	}
}

func TestCancelIsIdempotentAndClosesStream(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("chat-1")

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("chat-1"))

	// Publishing after disposal must not panic.
	hub.Publish(snapshot("chat-1", 1))
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("chat-1")
	defer cancel()

	// Overfill the subscriber queue; older snapshots are shed.
	for i := 1; i <= snapshotBuffer*3; i++ {
		hub.Publish(snapshot("chat-1", i))
	}

	// The newest snapshot is always retained.
	var last *models.ChatChannel
	for {
		select {
		case last = <-ch:
			continue
		default:
		}
		break
	}
	require.NotNil(t, last)
	assert.Len(t, last.Messages, snapshotBuffer*3)
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe("chat-1")
	b, cancelB := hub.Subscribe("chat-1")
	defer cancelA()
	defer cancelB()

	assert.Equal(t, 2, hub.SubscriberCount("chat-1"))
	hub.Publish(snapshot("chat-1", 1))

	require.Len(t, (<-a).Messages, 1)
	require.Len(t, (<-b).Messages, 1)
}
