package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// RegistrationService handles event sign-ups
type RegistrationService struct {
	eventRepo event.EventRepository
	regRepo   event.RegistrationRepository
	logger    *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(eventRepo event.EventRepository, regRepo event.RegistrationRepository, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		logger:    logger,
	}
}

// Register signs a person up for an event. It enforces the registration
// window, the quota and one registration per alumni per event.
func (s *RegistrationService) Register(ctx context.Context, eventID uuid.UUID, req RegisterRequest) (*RegistrationResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !evt.RegistrationOpenAt(time.Now()) {
		return nil, shared.NewDomainError("REGISTRATION_CLOSED", "Registration for this event is not open")
	}

	var alumniID *uuid.UUID
	if req.AlumniID != "" {
		parsed, err := uuid.Parse(req.AlumniID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ALUMNI", "Invalid alumni ID")
		}
		alumniID = &parsed

		existing, err := s.regRepo.FindByEventAndAlumni(ctx, eventID, parsed)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if existing != nil && existing.Status != event.RegistrationStatusCancelled {
			return nil, shared.NewDomainError("ALREADY_REGISTERED", "Alumni is already registered for this event")
		}
	}

	if evt.Quota > 0 {
		active, err := s.regRepo.CountActive(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if active >= int64(evt.Quota) {
			return nil, shared.NewDomainError("QUOTA_EXCEEDED", "Event quota has been reached")
		}
	}

	reg, err := event.NewRegistration(evt, alumniID, req.Name, req.Email, req.Answers)
	if err != nil {
		return nil, err
	}
	if err := s.regRepo.Save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("Event registration created",
		zap.String("registration_id", reg.ID.String()),
		zap.String("event_id", eventID.String()))

	resp := ToRegistrationResponse(reg)
	return &resp, nil
}

// ListByEvent retrieves registrations for an event
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uuid.UUID, req RegistrationListFilter, filter shared.Filter) ([]RegistrationResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	regs, err := s.regRepo.FindByEvent(ctx, eventID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RegistrationResponse, len(regs))
	for i := range regs {
		responses[i] = ToRegistrationResponse(&regs[i])
	}
	return responses, nil
}

// Cancel cancels a registration, freeing its quota slot
func (s *RegistrationService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*event.Registration).Cancel)
}

// MarkAttended records that the registrant showed up
func (s *RegistrationService) MarkAttended(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*event.Registration).MarkAttended)
}

func (s *RegistrationService) transition(ctx context.Context, id uuid.UUID, change func(*event.Registration) error) error {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(reg); err != nil {
		return err
	}
	return s.regRepo.Save(ctx, reg)
}
