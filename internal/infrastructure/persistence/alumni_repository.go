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

// GormAlumniRepository implements membership.AlumniRepository using GORM
type GormAlumniRepository struct {
	db *gorm.DB
}

// NewGormAlumniRepository creates a new GormAlumniRepository
func NewGormAlumniRepository(db *gorm.DB) *GormAlumniRepository {
	return &GormAlumniRepository{db: db}
}

// FindByID finds an alumni by ID
func (r *GormAlumniRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Alumni, error) {
	var alumni membership.Alumni
	if err := r.db.WithContext(ctx).First(&alumni, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alumni, nil
}

// FindByEmail finds an alumni by email
func (r *GormAlumniRepository) FindByEmail(ctx context.Context, email string) (*membership.Alumni, error) {
	var alumni membership.Alumni
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&alumni).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alumni, nil
}

// FindAll finds all alumni matching the filter
func (r *GormAlumniRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Alumni, error) {
	var alumni []membership.Alumni
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Alumni{}), filter)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, AlumniSortFields, "created_at")

	if err := query.Find(&alumni).Error; err != nil {
		return nil, err
	}
	return alumni, nil
}

// Save creates or updates an alumni
func (r *GormAlumniRepository) Save(ctx context.Context, alumni *membership.Alumni) error {
	return r.db.WithContext(ctx).Save(alumni).Error
}

// Delete deletes an alumni
func (r *GormAlumniRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&membership.Alumni{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts alumni matching the filter
func (r *GormAlumniRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&membership.Alumni{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySyubiyah counts alumni belonging to a syubiyah
func (r *GormAlumniRepository) CountBySyubiyah(ctx context.Context, syubiyahID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&membership.Alumni{}).
		Where("syubiyah_id = ?", syubiyahID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and filter options to the query
func (r *GormAlumniRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "syubiyah_id":
			query = query.Where("syubiyah_id = ?", value)
		case "graduation_year":
			query = query.Where("graduation_year = ?", value)
		}
	}

	return query
}

// Ensure GormAlumniRepository implements AlumniRepository
var _ membership.AlumniRepository = (*GormAlumniRepository)(nil)
