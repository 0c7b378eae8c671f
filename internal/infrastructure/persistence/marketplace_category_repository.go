package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormCategoryRepository implements marketplace.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Category, error) {
	var category marketplace.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketplace.Category, error) {
	var categories []marketplace.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&marketplace.Category{}), filter)
	query = applyPagination(query, filter)

	if err := query.
		Order("level ASC, sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren finds all direct children of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]marketplace.Category, error) {
	var categories []marketplace.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindRoots finds all root categories matching the filter
func (r *GormCategoryRepository) FindRoots(ctx context.Context, filter shared.Filter) ([]marketplace.Category, error) {
	var categories []marketplace.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&marketplace.Category{}), filter)

	if err := query.
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindDescendants finds every category below the given path (materialized path)
func (r *GormCategoryRepository) FindDescendants(ctx context.Context, path string) ([]marketplace.Category, error) {
	var categories []marketplace.Category
	if err := r.db.WithContext(ctx).
		Where("path LIKE ?", path+"/%").
		Order("level ASC, sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindSiblingByName finds a category with the given name under the same parent,
// excluding excludeID when non-nil
func (r *GormCategoryRepository) FindSiblingByName(ctx context.Context, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (*marketplace.Category, error) {
	query := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))

	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var category marketplace.Category
	if err := query.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *marketplace.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SaveWithSubtree persists the category and rewrites the path and level of
// every descendant still carrying the old path prefix, in one transaction.
func (r *GormCategoryRepository) SaveWithSubtree(ctx context.Context, category *marketplace.Category, oldPath string, levelDelta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(category).Error; err != nil {
			return err
		}

		if oldPath == category.Path && levelDelta == 0 {
			return nil
		}

		// Splice the new prefix onto each descendant path. substr is
		// 1-indexed so len(oldPath)+1 points at the trailing "/...".
		return tx.Model(&marketplace.Category{}).
			Where("path LIKE ?", oldPath+"/%").
			Updates(map[string]interface{}{
				"path":  gorm.Expr("? || substr(path, ?)", category.Path, len(oldPath)+1),
				"level": gorm.Expr("level + ?", levelDelta),
			}).Error
	})
}

// DeleteChecked verifies the category is an empty leaf and deletes it.
// The checks and the delete share one transaction so a concurrent child
// or product insert cannot slip in between them.
func (r *GormCategoryRepository) DeleteChecked(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var childCount int64
		if err := tx.Model(&marketplace.Category{}).
			Where("parent_id = ?", id).
			Count(&childCount).Error; err != nil {
			return err
		}
		if childCount > 0 {
			return shared.NewDomainError("HAS_CHILDREN", "Cannot delete category with children")
		}

		var productCount int64
		if err := tx.Model(&marketplace.Product{}).
			Where("category_id = ?", id).
			Count(&productCount).Error; err != nil {
			return err
		}
		if productCount > 0 {
			return shared.NewDomainError("HAS_PRODUCTS", "Cannot delete category with associated products")
		}

		result := tx.Delete(&marketplace.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountProducts counts the products referencing a category
func (r *GormCategoryRepository) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&marketplace.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&marketplace.Category{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and filter options to the query
func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "parent_id":
			if value == nil {
				query = query.Where("parent_id IS NULL")
			} else {
				query = query.Where("parent_id = ?", value)
			}
		case "level":
			query = query.Where("level = ?", value)
		}
	}

	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ marketplace.CategoryRepository = (*GormCategoryRepository)(nil)
