package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// SyubiyahRepository defines the interface for syubiyah persistence
type SyubiyahRepository interface {
	// FindByID finds a syubiyah by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Syubiyah, error)

	// FindByName finds a syubiyah by exact name
	FindByName(ctx context.Context, name string) (*Syubiyah, error)

	// FindAll finds syubiyah matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Syubiyah, error)

	// Save creates or updates a syubiyah
	Save(ctx context.Context, syubiyah *Syubiyah) error

	// Delete deletes a syubiyah
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts syubiyah matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
