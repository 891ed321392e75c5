package events

import (
	"context"
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff and gives up
// early when ctx is done. Returns the error from the final attempt.
//
// Events are advisory (they only refresh live views), so callers log the
// error instead of failing the operation that produced the event.
func PublishWithRetry(ctx context.Context, publisher EventPublisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil // Silently skip if no publisher (e.g., in tests or CLI one-shots)
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"property_id", event.PropertyID)
			}
			return nil
		}
		lastErr = err
		if err == ErrHubClosed {
			break
		}

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"property_id", event.PropertyID,
		"error", lastErr)

	return lastErr
}
