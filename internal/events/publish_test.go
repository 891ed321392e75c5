package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	err          error
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		if m.err != nil {
			return m.err
		}
		return errors.New("simulated send failure")
	}
	return nil
}

func TestPublishWithRetry_Success(t *testing.T) {
	t.Parallel()
	mock := &mockRetryPublisher{}
	prop := uuid.New()

	if err := PublishWithRetry(context.Background(), mock, NewEvent(EventTodoChanged, prop, uuid.Nil), 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.PropertyID != prop {
		t.Errorf("Expected property %s, got %s", prop, mock.lastEvent.PropertyID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	mock := &mockRetryPublisher{failUntil: 2}

	if err := PublishWithRetry(context.Background(), mock, NewEvent(EventTodoChanged, uuid.New(), uuid.Nil), 3); err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_AllFail(t *testing.T) {
	t.Parallel()
	mock := &mockRetryPublisher{failUntil: 10}

	start := time.Now()
	err := PublishWithRetry(context.Background(), mock, Event{Type: EventTodoChanged}, 3)
	if err == nil {
		t.Fatal("Expected error after all retries fail")
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
	// 50ms + 100ms of backoff
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms of backoff, got %v", elapsed)
	}
}

func TestPublishWithRetry_StopsOnClosedHub(t *testing.T) {
	t.Parallel()
	mock := &mockRetryPublisher{failUntil: 10, err: ErrHubClosed}

	if err := PublishWithRetry(context.Background(), mock, Event{}, 3); !errors.Is(err, ErrHubClosed) {
		t.Errorf("Expected ErrHubClosed, got %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected no retry against a closed hub, got %d attempts", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ContextCancelled(t *testing.T) {
	t.Parallel()
	mock := &mockRetryPublisher{failUntil: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := PublishWithRetry(ctx, mock, Event{}, 5); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPublishWithRetry_NilPublisher(t *testing.T) {
	t.Parallel()
	if err := PublishWithRetry(context.Background(), nil, Event{}, 3); err != nil {
		t.Errorf("Expected nil publisher to be skipped, got %v", err)
	}
}
