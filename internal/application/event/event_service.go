package event

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// EventService manages events and their registration forms
type EventService struct {
	eventRepo event.EventRepository
	regRepo   event.RegistrationRepository
	logger    *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo event.EventRepository, regRepo event.RegistrationRepository, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		logger:    logger,
	}
}

// Create creates a new draft event with its form fields
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	evt, err := event.NewEvent(req.Title, req.Description, req.Location,
		req.StartAt, req.EndAt, req.RegOpenAt, req.RegCloseAt, req.Quota, req.Fee)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, evt.Slug, uuid.Nil); err != nil {
		return nil, err
	}

	fields, err := buildFormFields(req.FormFields)
	if err != nil {
		return nil, err
	}
	if err := evt.SetFormFields(fields); err != nil {
		return nil, err
	}
	if req.BannerURL != "" {
		evt.SetBanner(req.BannerURL)
	}

	if err := s.eventRepo.Save(ctx, evt); err != nil {
		return nil, err
	}

	s.logger.Info("Event created",
		zap.String("event_id", evt.ID.String()),
		zap.String("slug", evt.Slug))

	resp := ToEventResponse(evt)
	return &resp, nil
}

// GetByID retrieves an event with its registration count
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCount(ctx, evt), nil
}

// GetBySlug retrieves an open event for the public site
func (s *EventService) GetBySlug(ctx context.Context, slug string) (*EventResponse, error) {
	evt, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if evt.Status == event.EventStatusDraft {
		return nil, shared.ErrNotFound
	}
	return s.withCount(ctx, evt), nil
}

// List retrieves events matching the filter
func (s *EventService) List(ctx context.Context, req EventListFilter, filter shared.Filter) (*shared.Paginated[EventResponse], error) {
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Upcoming {
		filter.Filters["upcoming"] = true
	}

	events, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = ToEventResponse(&events[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Update updates an event and replaces its form fields
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := evt.Update(req.Title, req.Description, req.Location,
		req.StartAt, req.EndAt, req.RegOpenAt, req.RegCloseAt, req.Quota, req.Fee); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, evt.Slug, evt.ID); err != nil {
		return nil, err
	}

	fields, err := buildFormFields(req.FormFields)
	if err != nil {
		return nil, err
	}
	if err := evt.SetFormFields(fields); err != nil {
		return nil, err
	}
	evt.SetBanner(req.BannerURL)

	if err := s.eventRepo.Save(ctx, evt); err != nil {
		return nil, err
	}

	resp := ToEventResponse(evt)
	return &resp, nil
}

// Open opens the event for registration
func (s *EventService) Open(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	return s.transition(ctx, id, (*event.Event).Open)
}

// Close closes the event for registration
func (s *EventService) Close(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	return s.transition(ctx, id, (*event.Event).Close)
}

// Delete removes an event, its form fields and registrations
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (s *EventService) transition(ctx context.Context, id uuid.UUID, change func(*event.Event) error) (*EventResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(evt); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, evt); err != nil {
		return nil, err
	}
	resp := ToEventResponse(evt)
	return &resp, nil
}

func (s *EventService) withCount(ctx context.Context, evt *event.Event) *EventResponse {
	resp := ToEventResponse(evt)
	if count, err := s.regRepo.CountActive(ctx, evt.ID); err == nil {
		resp.RegisteredCount = &count
	}
	return &resp
}

func (s *EventService) checkSlug(ctx context.Context, slug string, excludeID uuid.UUID) error {
	existing, err := s.eventRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return shared.NewDomainError("DUPLICATE_TITLE", "An event with this title already exists")
	}
	return nil
}

func buildFormFields(reqs []FormFieldRequest) ([]event.FormField, error) {
	fields := make([]event.FormField, 0, len(reqs))
	for _, r := range reqs {
		field, err := event.NewFormField(r.Label, event.FieldType(r.Type), r.Options, r.Required)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}
