package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormEventRepository implements event.EventRepository using GORM.
// Form fields live in the event_form_fields table and are replaced as a
// whole whenever the event is saved.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by ID with form fields loaded
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var evt event.Event
	if err := r.db.WithContext(ctx).First(&evt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadFormFields(ctx, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// FindBySlug finds an event by slug with form fields loaded
func (r *GormEventRepository) FindBySlug(ctx context.Context, slug string) (*event.Event, error) {
	var evt event.Event
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&evt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadFormFields(ctx, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

// FindAll finds events matching the filter. Form fields are not loaded
// for listings.
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, error) {
	var events []event.Event
	query := r.applyFilter(r.db.WithContext(ctx).Model(&event.Event{}), filter)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, EventSortFields, "start_at")

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save persists the event and replaces its form fields in one transaction
func (r *GormEventRepository) Save(ctx context.Context, evt *event.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(evt).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", evt.ID).Delete(&event.FormField{}).Error; err != nil {
			return err
		}
		if len(evt.FormFields) > 0 {
			fields := make([]event.FormField, len(evt.FormFields))
			for i, f := range evt.FormFields {
				f.EventID = evt.ID
				f.SortOrder = i
				fields[i] = f
			}
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an event, its form fields and registrations
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&event.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&event.FormField{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&event.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&event.Event{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// loadFormFields loads the form fields for an event ordered by position
func (r *GormEventRepository) loadFormFields(ctx context.Context, evt *event.Event) error {
	var fields []event.FormField
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", evt.ID).
		Order("sort_order ASC").
		Find(&fields).Error; err != nil {
		return err
	}
	evt.FormFields = fields
	return nil
}

// applyFilter applies search and filter options to the query
func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "upcoming":
			if upcoming, ok := value.(bool); ok && upcoming {
				query = query.Where("start_at > ?", time.Now())
			}
		case "ended_before":
			if cutoff, ok := value.(time.Time); ok {
				query = query.Where("end_at < ?", cutoff)
			}
		}
	}

	return query
}

// Ensure GormEventRepository implements EventRepository
var _ event.EventRepository = (*GormEventRepository)(nil)
