package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormRegistrationRepository implements event.RegistrationRepository using GORM
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewGormRegistrationRepository creates a new GormRegistrationRepository
func NewGormRegistrationRepository(db *gorm.DB) *GormRegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// FindByID finds a registration by ID
func (r *GormRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Registration, error) {
	var reg event.Registration
	if err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// FindByEvent finds registrations for an event
func (r *GormRegistrationRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]event.Registration, error) {
	query := r.db.WithContext(ctx).
		Model(&event.Registration{}).
		Where("event_id = ?", eventID)

	for key, value := range filter.Filters {
		if key == "status" {
			query = query.Where("status = ?", value)
		}
	}
	query = applyPagination(query, filter)

	var regs []event.Registration
	if err := query.Order("created_at ASC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// FindByEventAndAlumni finds an alumni's registration for an event
func (r *GormRegistrationRepository) FindByEventAndAlumni(ctx context.Context, eventID, alumniID uuid.UUID) (*event.Registration, error) {
	var reg event.Registration
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND alumni_id = ?", eventID, alumniID).
		Order("created_at DESC").
		First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// CountActive counts non-cancelled registrations for an event
func (r *GormRegistrationRepository) CountActive(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&event.Registration{}).
		Where("event_id = ? AND status <> ?", eventID, event.RegistrationStatusCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a registration
func (r *GormRegistrationRepository) Save(ctx context.Context, registration *event.Registration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}

// Delete deletes a registration
func (r *GormRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&event.Registration{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRegistrationRepository implements RegistrationRepository
var _ event.RegistrationRepository = (*GormRegistrationRepository)(nil)
