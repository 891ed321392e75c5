package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

type subscriber struct {
	propertyID uuid.UUID
	send       chan Event
	closeOnce  sync.Once
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() { close(s.send) })
}

// Hub fans property change events out to in-process subscribers, such as
// the SSE stream. Delivery is best effort: a subscriber whose
// queue is full misses the event.
type Hub struct {
	broadcast       chan Event
	subscribers     map[*subscriber]bool
	mu              sync.RWMutex
	metrics         *Metrics
	sequenceCounter atomic.Int64
	bufferSize      int
	closed          atomic.Bool
	done            chan struct{}
	shutdownOnce    sync.Once
}

// NewHub creates a hub with the given broadcast and per-subscriber queue sizes
func NewHub(broadcastBuffer, subscriberBuffer int) *Hub {
	if broadcastBuffer <= 0 {
		broadcastBuffer = 100
	}
	if subscriberBuffer <= 0 {
		subscriberBuffer = 10
	}
	return &Hub{
		broadcast:   make(chan Event, broadcastBuffer),
		subscribers: make(map[*subscriber]bool),
		metrics:     NewMetrics(),
		bufferSize:  subscriberBuffer,
		done:        make(chan struct{}),
	}
}

// Run distributes events until ctx is cancelled, then shuts the hub down
func (h *Hub) Run(ctx context.Context) {
	defer h.Shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) deliver(event Event) {
	event.SequenceID = h.sequenceCounter.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subscribers {
		if event.PropertyID != uuid.Nil && s.propertyID != uuid.Nil && s.propertyID != event.PropertyID {
			continue
		}
		// Non-blocking send - if subscriber is slow, skip
		select {
		case s.send <- event:
			h.metrics.EventsSent.Add(1)
		default:
			h.metrics.EventsDropped.Add(1)
			slog.Warn("subscriber queue full, event dropped",
				"event_type", event.Type,
				"property_id", event.PropertyID)
		}
	}
}

// SendEvent queues an event for broadcast (non-blocking)
func (h *Hub) SendEvent(event Event) error {
	if h.closed.Load() {
		return ErrHubClosed
	}
	select {
	case h.broadcast <- event:
		h.metrics.EventsReceived.Add(1)
		return nil
	default:
		return ErrBroadcastFull
	}
}

// Subscribe registers a subscriber for one property, or all when propertyID is uuid.Nil
func (h *Hub) Subscribe(propertyID uuid.UUID) (<-chan Event, func()) {
	s := &subscriber{propertyID: propertyID, send: make(chan Event, h.bufferSize)}

	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		s.close()
		return s.send, func() {}
	}
	h.subscribers[s] = true
	h.metrics.Subscribers.Store(int32(len(h.subscribers)))
	h.mu.Unlock()

	return s.send, func() { h.remove(s) }
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, s)
	h.metrics.Subscribers.Store(int32(len(h.subscribers)))
	h.mu.Unlock()
	s.close()
}

// Metrics returns a snapshot of hub statistics
func (h *Hub) Metrics() MetricsSnapshot {
	return h.metrics.Snapshot()
}

// Shutdown stops delivery and closes every subscriber channel
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		h.closed.Store(true)
		close(h.done)

		h.mu.Lock()
		for s := range h.subscribers {
			s.close()
		}
		h.subscribers = make(map[*subscriber]bool)
		h.metrics.Subscribers.Store(0)
		h.mu.Unlock()
	})
}
