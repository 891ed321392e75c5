package events

import "github.com/google/uuid"

// EventPublisher is what services depend on to announce changes.
// A nil EventPublisher is allowed and means "do not publish".
type EventPublisher interface {
	// SendEvent queues an event for delivery without blocking
	SendEvent(event Event) error
}

// Subscriber hands out change streams. propertyID uuid.Nil subscribes to every property.
// The returned cancel function must be called to release the subscription.
type Subscriber interface {
	Subscribe(propertyID uuid.UUID) (<-chan Event, func())
}

// Compile-time verification that *Hub implements both sides
var (
	_ EventPublisher = (*Hub)(nil)
	_ Subscriber     = (*Hub)(nil)
)
