package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// FindByID finds an event by ID, with form fields loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindBySlug finds an event by slug, with form fields loaded
	FindBySlug(ctx context.Context, slug string) (*Event, error)

	// FindAll finds events matching the filter.
	// Supported filter keys: status, upcoming (start_at in the future),
	// ended_before (end_at before a time.Time cutoff).
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, error)

	// Save creates or updates an event together with its form fields
	Save(ctx context.Context, event *Event) error

	// Delete deletes an event, its form fields and registrations
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts events matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RegistrationRepository defines the interface for registration persistence
type RegistrationRepository interface {
	// FindByID finds a registration by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Registration, error)

	// FindByEvent finds registrations for an event
	FindByEvent(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]Registration, error)

	// FindByEventAndAlumni finds an alumni's registration for an event
	FindByEventAndAlumni(ctx context.Context, eventID, alumniID uuid.UUID) (*Registration, error)

	// CountActive counts non-cancelled registrations for an event
	CountActive(ctx context.Context, eventID uuid.UUID) (int64, error)

	// Save creates or updates a registration
	Save(ctx context.Context, registration *Registration) error

	// Delete deletes a registration
	Delete(ctx context.Context, id uuid.UUID) error
}
