package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormMustahiqRepository implements membership.MustahiqRepository using GORM
type GormMustahiqRepository struct {
	db *gorm.DB
}

// NewGormMustahiqRepository creates a new GormMustahiqRepository
func NewGormMustahiqRepository(db *gorm.DB) *GormMustahiqRepository {
	return &GormMustahiqRepository{db: db}
}

// FindByID finds a mustahiq by ID
func (r *GormMustahiqRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Mustahiq, error) {
	var mustahiq membership.Mustahiq
	if err := r.db.WithContext(ctx).First(&mustahiq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mustahiq, nil
}

// FindAll finds all mustahiq matching the filter
func (r *GormMustahiqRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Mustahiq, error) {
	var mustahiq []membership.Mustahiq
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Mustahiq{}), filter)
	query = applyPagination(query, filter)

	if err := query.Order("full_name ASC").Find(&mustahiq).Error; err != nil {
		return nil, err
	}
	return mustahiq, nil
}

// Save creates or updates a mustahiq
func (r *GormMustahiqRepository) Save(ctx context.Context, mustahiq *membership.Mustahiq) error {
	return r.db.WithContext(ctx).Save(mustahiq).Error
}

// Delete deletes a mustahiq
func (r *GormMustahiqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&membership.Mustahiq{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts mustahiq matching the filter
func (r *GormMustahiqRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Mustahiq{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and filter options to the query
func (r *GormMustahiqRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "syubiyah_id":
			query = query.Where("syubiyah_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormMustahiqRepository implements MustahiqRepository
var _ membership.MustahiqRepository = (*GormMustahiqRepository)(nil)
