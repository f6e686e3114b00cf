// Package realtime fans out full channel-document snapshots to live
// subscribers, mirroring the per-document change feed the mobile clients
// consume.
package realtime

import (
	"sync"

	"coachbar/models"
)

// snapshotBuffer bounds each subscriber's queue. Subscribers observe the
// latest snapshots, not necessarily every intermediate one: when a slow
// consumer falls behind, the oldest queued snapshot is dropped.
const snapshotBuffer = 8

// Hub routes published channel snapshots to subscribers keyed by channel id.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int64]chan *models.ChatChannel
	nextID int64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]chan *models.ChatChannel)}
}

// Subscribe registers a listener for one channel and returns the snapshot
// stream plus a disposer. The disposer must be called when the consumer goes
// away; it is safe to call more than once. The stream is closed on disposal.
func (h *Hub) Subscribe(channelID string) (<-chan *models.ChatChannel, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan *models.ChatChannel, snapshotBuffer)

	if h.subs[channelID] == nil {
		h.subs[channelID] = make(map[int64]chan *models.ChatChannel)
	}
	h.subs[channelID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if listeners, ok := h.subs[channelID]; ok {
				delete(listeners, id)
				if len(listeners) == 0 {
					delete(h.subs, channelID)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of the channel. Publish
// never blocks: a full subscriber queue sheds its oldest snapshot first.
func (h *Hub) Publish(channel *models.ChatChannel) {
	if channel == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[channel.ID] {
		for {
			select {
			case ch <- channel:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// SubscriberCount reports the number of live listeners on a channel.
func (h *Hub) SubscriberCount(channelID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[channelID])
}
