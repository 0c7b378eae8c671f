package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// AlumniRepository defines the interface for alumni persistence
type AlumniRepository interface {
	// FindByID finds an alumni by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Alumni, error)

	// FindByEmail finds an alumni by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*Alumni, error)

	// FindAll finds alumni matching the filter.
	// Supported filter keys: status, syubiyah_id, graduation_year.
	FindAll(ctx context.Context, filter shared.Filter) ([]Alumni, error)

	// Save creates or updates an alumni
	Save(ctx context.Context, alumni *Alumni) error

	// Delete deletes an alumni
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts alumni matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountBySyubiyah counts alumni referencing a syubiyah
	CountBySyubiyah(ctx context.Context, syubiyahID uuid.UUID) (int64, error)
}
