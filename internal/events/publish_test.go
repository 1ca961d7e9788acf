package events

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// mockPublisher counts Notify calls and fails a configurable number of times
type mockPublisher struct {
	mu       sync.Mutex
	calls    int
	failures int
}

var _ Publisher = (*mockPublisher)(nil)

func (m *mockPublisher) Connect(ctx context.Context) error { return nil }

func (m *mockPublisher) Notify(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("socket unavailable")
	}
	return nil
}

func (m *mockPublisher) Listen(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event)
	close(ch)
	return ch, nil
}

func (m *mockPublisher) Subscribe(projectID int) error { return nil }

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNotifyWithRetryNilClient(t *testing.T) {
	t.Parallel()

	if err := NotifyWithRetry(nil, Event{Type: EventTaskMoved}, 3); err != nil {
		t.Errorf("Nil client should be a no-op, got error: %v", err)
	}
}

func TestNotifyWithRetrySucceedsFirstTry(t *testing.T) {
	t.Parallel()
	m := &mockPublisher{}

	err := NotifyWithRetry(m, Event{Type: EventTaskMoved}, 3)
	if err != nil {
		t.Fatalf("NotifyWithRetry() failed: %v", err)
	}
	if m.callCount() != 1 {
		t.Errorf("Notify called %d times, want 1", m.callCount())
	}
}

func TestNotifyWithRetryRecovers(t *testing.T) {
	t.Parallel()
	m := &mockPublisher{failures: 2}

	err := NotifyWithRetry(m, Event{Type: EventColumnChanged}, 3)
	if err != nil {
		t.Fatalf("Expected success after retries, got: %v", err)
	}
	if m.callCount() != 3 {
		t.Errorf("Notify called %d times, want 3", m.callCount())
	}
}

func TestNotifyWithRetryExhausted(t *testing.T) {
	t.Parallel()
	m := &mockPublisher{failures: 10}

	err := NotifyWithRetry(m, Event{Type: EventStatusChanged}, 3)
	if err == nil {
		t.Fatal("Expected error when all retries fail")
	}
	if m.callCount() != 3 {
		t.Errorf("Notify called %d times, want 3", m.callCount())
	}
}
