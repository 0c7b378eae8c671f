package marketplace

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds all categories matching the filter,
	// ordered by (level, sort_order, name)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindChildren finds all direct children of a category,
	// ordered by (sort_order, name)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// FindRoots finds all root categories matching the filter,
	// ordered by (sort_order, name)
	FindRoots(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindDescendants finds every category below the given path,
	// ordered by (level, sort_order, name)
	FindDescendants(ctx context.Context, path string) ([]Category, error)

	// FindSiblingByName finds a category with the given name (case-insensitive)
	// under the same parent, excluding excludeID when non-nil. Returns
	// shared.ErrNotFound when no such sibling exists.
	FindSiblingByName(ctx context.Context, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (*Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// SaveWithSubtree persists the category and rewrites the path and level
	// of every descendant that still carries the old path prefix. Both writes
	// happen inside a single transaction.
	SaveWithSubtree(ctx context.Context, category *Category, oldPath string, levelDelta int) error

	// DeleteChecked deletes a category after verifying, inside the same
	// transaction, that it has no children and no referencing products.
	// Returns a domain error when either check fails.
	DeleteChecked(ctx context.Context, id uuid.UUID) error

	// CountProducts counts the products referencing a category
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
