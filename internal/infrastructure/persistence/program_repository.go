package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormProgramRepository implements donation.ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// FindByID finds a program by ID
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Program, error) {
	var program donation.Program
	if err := r.db.WithContext(ctx).First(&program, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// FindBySlug finds a program by slug
func (r *GormProgramRepository) FindBySlug(ctx context.Context, slug string) (*donation.Program, error) {
	var program donation.Program
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// FindAll finds programs matching the filter with a total count
func (r *GormProgramRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[donation.Program], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&donation.Program{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var programs []donation.Program
	query = applyPagination(query, filter)
	if err := query.Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(programs, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a program
func (r *GormProgramRepository) Save(ctx context.Context, program *donation.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

// Delete deletes a program
func (r *GormProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&donation.Program{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasDonations checks whether any donation references the program
func (r *GormProgramRepository) HasDonations(ctx context.Context, programID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&donation.Donation{}).
		Where("program_id = ?", programID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search and filter options to the query
func (r *GormProgramRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		if key == "status" {
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormProgramRepository implements ProgramRepository
var _ donation.ProgramRepository = (*GormProgramRepository)(nil)
