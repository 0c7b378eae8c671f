package cms

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindBySlug finds a post by slug
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// FindAll finds posts matching the filter.
	// Supported filter keys: status, category_id, author_id.
	FindAll(ctx context.Context, filter shared.Filter) ([]Post, error)

	// Save creates or updates a post
	Save(ctx context.Context, post *Post) error

	// Delete deletes a post and its comments
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts posts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts posts referencing a post category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// IncrementViewCount bumps the view counter without touching the version
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

// PostCategoryRepository defines the interface for post category persistence
type PostCategoryRepository interface {
	// FindByID finds a post category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PostCategory, error)

	// FindByName finds a post category by name (case-insensitive)
	FindByName(ctx context.Context, name string) (*PostCategory, error)

	// FindAll finds all post categories ordered by name
	FindAll(ctx context.Context) ([]PostCategory, error)

	// Save creates or updates a post category
	Save(ctx context.Context, category *PostCategory) error

	// Delete deletes a post category
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// FindByPost finds comments on a post, optionally restricted to a status
	FindByPost(ctx context.Context, postID uuid.UUID, status *CommentStatus) ([]Comment, error)

	// FindAll finds comments matching the filter.
	// Supported filter keys: status, post_id.
	FindAll(ctx context.Context, filter shared.Filter) ([]Comment, error)

	// Save creates or updates a comment
	Save(ctx context.Context, comment *Comment) error

	// Delete deletes a comment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts comments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
