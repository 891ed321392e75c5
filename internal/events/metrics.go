package events

import (
	"sync/atomic"
	"time"
)

// Metrics tracks hub statistics using atomic operations for thread-safety
type Metrics struct {
	EventsReceived atomic.Int64
	EventsSent     atomic.Int64
	EventsDropped  atomic.Int64
	Subscribers    atomic.Int32
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsReceived int64     `json:"events_received"`
	EventsSent     int64     `json:"events_sent"`
	EventsDropped  int64     `json:"events_dropped"`
	Subscribers    int32     `json:"subscribers"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived: m.EventsReceived.Load(),
		EventsSent:     m.EventsSent.Load(),
		EventsDropped:  m.EventsDropped.Load(),
		Subscribers:    m.Subscribers.Load(),
		StartTime:      m.StartTime,
		Uptime:         time.Since(m.StartTime).Round(time.Second).String(),
	}
}
