package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormPostCategoryRepository implements cms.PostCategoryRepository using GORM
type GormPostCategoryRepository struct {
	db *gorm.DB
}

// NewGormPostCategoryRepository creates a new GormPostCategoryRepository
func NewGormPostCategoryRepository(db *gorm.DB) *GormPostCategoryRepository {
	return &GormPostCategoryRepository{db: db}
}

// FindByID finds a post category by ID
func (r *GormPostCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cms.PostCategory, error) {
	var category cms.PostCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a post category by name (case-insensitive)
func (r *GormPostCategoryRepository) FindByName(ctx context.Context, name string) (*cms.PostCategory, error) {
	var category cms.PostCategory
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all post categories ordered by name
func (r *GormPostCategoryRepository) FindAll(ctx context.Context) ([]cms.PostCategory, error) {
	var categories []cms.PostCategory
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a post category
func (r *GormPostCategoryRepository) Save(ctx context.Context, category *cms.PostCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a post category
func (r *GormPostCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cms.PostCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPostCategoryRepository implements PostCategoryRepository
var _ cms.PostCategoryRepository = (*GormPostCategoryRepository)(nil)
