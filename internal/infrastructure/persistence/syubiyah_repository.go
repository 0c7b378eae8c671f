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

// GormSyubiyahRepository implements membership.SyubiyahRepository using GORM
type GormSyubiyahRepository struct {
	db *gorm.DB
}

// NewGormSyubiyahRepository creates a new GormSyubiyahRepository
func NewGormSyubiyahRepository(db *gorm.DB) *GormSyubiyahRepository {
	return &GormSyubiyahRepository{db: db}
}

// FindByID finds a syubiyah by ID
func (r *GormSyubiyahRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Syubiyah, error) {
	var syubiyah membership.Syubiyah
	if err := r.db.WithContext(ctx).First(&syubiyah, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &syubiyah, nil
}

// FindByName finds a syubiyah by name (case-insensitive)
func (r *GormSyubiyahRepository) FindByName(ctx context.Context, name string) (*membership.Syubiyah, error) {
	var syubiyah membership.Syubiyah
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&syubiyah).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &syubiyah, nil
}

// FindAll finds all syubiyah matching the filter
func (r *GormSyubiyahRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Syubiyah, error) {
	var syubiyah []membership.Syubiyah
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Syubiyah{}), filter)
	query = applyPagination(query, filter)

	if err := query.Order("name ASC").Find(&syubiyah).Error; err != nil {
		return nil, err
	}
	return syubiyah, nil
}

// Save creates or updates a syubiyah
func (r *GormSyubiyahRepository) Save(ctx context.Context, syubiyah *membership.Syubiyah) error {
	return r.db.WithContext(ctx).Save(syubiyah).Error
}

// Delete deletes a syubiyah
func (r *GormSyubiyahRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&membership.Syubiyah{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts syubiyah matching the filter
func (r *GormSyubiyahRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Syubiyah{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and filter options to the query
func (r *GormSyubiyahRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(region) LIKE ? OR LOWER(city) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "region":
			query = query.Where("region = ?", value)
		}
	}

	return query
}

// Ensure GormSyubiyahRepository implements SyubiyahRepository
var _ membership.SyubiyahRepository = (*GormSyubiyahRepository)(nil)
