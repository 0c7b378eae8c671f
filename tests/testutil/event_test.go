package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventHandler_RecordsEvents(t *testing.T) {
	handler := NewMockEventHandler("alumni.verified")

	event := NewTestEvent("alumni.verified", "payload-1")
	require.NoError(t, handler.Handle(context.Background(), event))

	handled := handler.Handled()
	require.Len(t, handled, 1)
	assert.Equal(t, "alumni.verified", handled[0].EventType())
	assert.Equal(t, "TestAggregate", handled[0].AggregateType())
	assert.Equal(t, []string{"alumni.verified"}, handler.EventTypes())
}

func TestMockEventHandler_SetError(t *testing.T) {
	handler := NewMockEventHandler()
	handler.SetError(errors.New("handler failed"))

	err := handler.Handle(context.Background(), NewTestEvent("donation.settled", ""))
	require.Error(t, err)
	assert.Equal(t, 0, handler.HandledCount())
}

func TestMockEventHandler_Reset(t *testing.T) {
	handler := NewMockEventHandler()
	require.NoError(t, handler.Handle(context.Background(), NewTestEvent("post.published", "")))
	require.Equal(t, 1, handler.HandledCount())

	handler.Reset()
	assert.Equal(t, 0, handler.HandledCount())
}

func TestNewTestEvent_Fields(t *testing.T) {
	event := NewTestEvent("event.created", "hello")

	assert.Equal(t, "event.created", event.EventType())
	assert.Equal(t, "hello", event.Payload)
	assert.NotZero(t, event.EventID())
	assert.False(t, event.OccurredAt().IsZero())
}
