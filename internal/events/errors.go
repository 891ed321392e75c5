package events

import "errors"

var (
	// ErrHubClosed is returned when publishing to a hub that has shut down
	ErrHubClosed = errors.New("event hub is closed")

	// ErrBroadcastFull is returned when the broadcast queue cannot take another event
	ErrBroadcastFull = errors.New("broadcast channel full")
)
