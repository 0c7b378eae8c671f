package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/shared"
)

// MockEventHandler records every event it receives so tests can assert
// on asynchronous event delivery.
type MockEventHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewMockEventHandler creates a handler subscribed to the given event
// types. An empty list subscribes to all events.
func NewMockEventHandler(eventTypes ...string) *MockEventHandler {
	return &MockEventHandler{eventTypes: eventTypes}
}

// Handle records the event, returning the configured error if any.
func (h *MockEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.handled = append(h.handled, event)
	return nil
}

// EventTypes returns the subscribed event types.
func (h *MockEventHandler) EventTypes() []string {
	return h.eventTypes
}

// SetError makes subsequent Handle calls fail with err.
func (h *MockEventHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Reset clears recorded events and any configured error.
func (h *MockEventHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = nil
	h.err = nil
}

// Handled returns a copy of the recorded events.
func (h *MockEventHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.handled))
	copy(out, h.handled)
	return out
}

// HandledCount returns how many events have been recorded.
func (h *MockEventHandler) HandledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// TestEvent is a minimal domain event for bus tests.
type TestEvent struct {
	shared.BaseDomainEvent
	Payload string
}

// NewTestEvent creates a test event with the given type and payload.
func NewTestEvent(eventType, payload string) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Payload:         payload,
	}
}

// WaitForEventCount blocks until the handler has recorded at least n
// events or the timeout elapses.
func WaitForEventCount(t *testing.T, h *MockEventHandler, n int, timeout time.Duration) {
	t.Helper()
	RequireEventually(t, func() bool {
		return h.HandledCount() >= n
	}, timeout, 10*time.Millisecond, "expected at least %d events, got %d", n, h.HandledCount())
}
