package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/shared"
)

var _ shared.EventHandler = (*AuditLogHandler)(nil)

// AuditLogHandler is a wildcard handler that writes every domain event
// to the structured log. It gives operators a trail of who registered,
// what was published and which donations settled without a separate
// audit store.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle logs the event
func (h *AuditLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty list so the handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}
