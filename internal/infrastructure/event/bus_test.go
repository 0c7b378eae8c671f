package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ikada/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panic    bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panic {
		panic("boom")
	}
	if h.fail {
		return errors.New("handler failed")
	}
	h.received = append(h.received, evt)
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "Alumni", uuid.New())
	return &evt
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	handler := &recordingHandler{types: []string{"membership.alumni.registered"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("membership.alumni.registered"))

	require.NoError(t, err)
	require.Len(t, handler.received, 1)
	assert.Equal(t, "membership.alumni.registered", handler.received[0].EventType())
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	handler := &recordingHandler{types: []string{"donation.paid"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("membership.alumni.registered"))

	require.NoError(t, err)
	assert.Empty(t, handler.received)
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent("donation.paid"),
		newTestEvent("membership.alumni.registered"),
	)

	require.NoError(t, err)
	assert.Len(t, handler.received, 2)
}

func TestInMemoryEventBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	failing := &recordingHandler{types: []string{"donation.paid"}, fail: true}
	working := &recordingHandler{types: []string{"donation.paid"}}
	bus.Subscribe(failing)
	bus.Subscribe(working)

	err := bus.Publish(context.Background(), newTestEvent("donation.paid"))

	require.NoError(t, err)
	assert.Len(t, working.received, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	panicking := &recordingHandler{types: []string{"donation.paid"}, panic: true}
	working := &recordingHandler{types: []string{"donation.paid"}}
	bus.Subscribe(panicking)
	bus.Subscribe(working)

	err := bus.Publish(context.Background(), newTestEvent("donation.paid"))

	require.NoError(t, err)
	assert.Len(t, working.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	handler := &recordingHandler{types: []string{"donation.paid"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("donation.paid"))

	require.NoError(t, err)
	assert.Empty(t, handler.received)
}

func TestAuditLogHandler_ReceivesAllEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zaptest.NewLogger(t))
	audit := NewAuditLogHandler(zaptest.NewLogger(t))
	bus.Subscribe(audit)

	err := bus.Publish(context.Background(), newTestEvent("marketplace.category.created"))

	require.NoError(t, err)
}
