package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormCommentRepository implements cms.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*cms.Comment, error) {
	var comment cms.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindByPost finds comments on a post, optionally restricted to a status
func (r *GormCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, status *cms.CommentStatus) ([]cms.Comment, error) {
	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var comments []cms.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindAll finds comments matching the filter
func (r *GormCommentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cms.Comment, error) {
	var comments []cms.Comment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&cms.Comment{}), filter)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, CommonSortFields, "created_at")

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *cms.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cms.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts comments matching the filter
func (r *GormCommentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&cms.Comment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCommentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "post_id":
			query = query.Where("post_id = ?", value)
		}
	}
	return query
}

// Ensure GormCommentRepository implements CommentRepository
var _ cms.CommentRepository = (*GormCommentRepository)(nil)
