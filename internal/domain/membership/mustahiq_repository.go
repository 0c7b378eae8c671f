package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// MustahiqRepository defines the interface for mustahiq persistence
type MustahiqRepository interface {
	// FindByID finds a mustahiq by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Mustahiq, error)

	// FindAll finds mustahiq matching the filter.
	// Supported filter keys: category, syubiyah_id, is_active.
	FindAll(ctx context.Context, filter shared.Filter) ([]Mustahiq, error)

	// Save creates or updates a mustahiq
	Save(ctx context.Context, mustahiq *Mustahiq) error

	// Delete deletes a mustahiq
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts mustahiq matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
