package membership

import (
	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeAlumni = "Alumni"

// Event type constants
const (
	EventTypeAlumniRegistered = "AlumniRegistered"
	EventTypeAlumniVerified   = "AlumniVerified"
)

// AlumniRegisteredEvent is published when a new alumni registers
type AlumniRegisteredEvent struct {
	shared.BaseDomainEvent
	AlumniID       uuid.UUID `json:"alumni_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	GraduationYear int       `json:"graduation_year"`
}

// NewAlumniRegisteredEvent creates a new AlumniRegisteredEvent
func NewAlumniRegisteredEvent(alumni *Alumni) *AlumniRegisteredEvent {
	return &AlumniRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlumniRegistered, AggregateTypeAlumni, alumni.ID),
		AlumniID:        alumni.ID,
		FullName:        alumni.FullName,
		Email:           alumni.Email,
		GraduationYear:  alumni.GraduationYear,
	}
}

// AlumniVerifiedEvent is published when an admin verifies a registration
type AlumniVerifiedEvent struct {
	shared.BaseDomainEvent
	AlumniID   uuid.UUID  `json:"alumni_id"`
	VerifiedBy *uuid.UUID `json:"verified_by,omitempty"`
}

// NewAlumniVerifiedEvent creates a new AlumniVerifiedEvent
func NewAlumniVerifiedEvent(alumni *Alumni) *AlumniVerifiedEvent {
	return &AlumniVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlumniVerified, AggregateTypeAlumni, alumni.ID),
		AlumniID:        alumni.ID,
		VerifiedBy:      alumni.VerifiedBy,
	}
}
