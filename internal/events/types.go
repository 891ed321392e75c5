package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTodoChanged       EventType = "todo_changed"
	EventTodoDeleted       EventType = "todo_deleted"
	EventOrderChanged      EventType = "order_changed"
	EventDefaultsGenerated EventType = "defaults_generated"
	EventPurchaseChanged   EventType = "purchase_changed"
	EventIssueChanged      EventType = "issue_changed"
	EventSettingsChanged   EventType = "settings_changed"
)

// Event represents a change to a property's renovation book
type Event struct {
	Type       EventType `json:"type"`
	PropertyID uuid.UUID `json:"property_id"` // uuid.Nil reaches every subscriber
	EntityID   uuid.UUID `json:"entity_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing, assigned by the hub
}

// NewEvent stamps an event with the current time
func NewEvent(t EventType, propertyID, entityID uuid.UUID) Event {
	return Event{Type: t, PropertyID: propertyID, EntityID: entityID, Timestamp: time.Now().UTC()}
}
