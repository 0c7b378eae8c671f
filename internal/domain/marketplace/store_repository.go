package marketplace

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	// FindByID finds a store by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindBySlug finds a store by its slug
	FindBySlug(ctx context.Context, slug string) (*Store, error)

	// FindByOwner finds all stores owned by an alumni
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Store, error)

	// FindAll finds all stores matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error

	// Delete deletes a store
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stores matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountProducts counts the products belonging to a store
	CountProducts(ctx context.Context, storeID uuid.UUID) (int64, error)
}
