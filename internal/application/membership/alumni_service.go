package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// AlumniService handles alumni registration, verification and the
// member directory
type AlumniService struct {
	alumniRepo   membership.AlumniRepository
	syubiyahRepo membership.SyubiyahRepository
	eventBus     shared.EventPublisher
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(
	alumniRepo membership.AlumniRepository,
	syubiyahRepo membership.SyubiyahRepository,
	eventBus shared.EventPublisher,
) *AlumniService {
	return &AlumniService{
		alumniRepo:   alumniRepo,
		syubiyahRepo: syubiyahRepo,
		eventBus:     eventBus,
	}
}

// Register creates a new alumni in pending state
func (s *AlumniService) Register(ctx context.Context, req RegisterAlumniRequest) (*AlumniResponse, error) {
	existing, err := s.alumniRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "An alumni with this email is already registered")
	}

	if err := s.checkSyubiyah(ctx, req.SyubiyahID); err != nil {
		return nil, err
	}

	alumni, err := membership.NewAlumni(req.FullName, req.Email, req.Phone, req.GraduationYear, req.SyubiyahID, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.alumniRepo.Save(ctx, alumni); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, alumni)

	return ToAlumniResponse(alumni), nil
}

// GetByID retrieves an alumni by ID
func (s *AlumniService) GetByID(ctx context.Context, id uuid.UUID) (*AlumniResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAlumniResponse(alumni), nil
}

// List retrieves alumni matching the filter
func (s *AlumniService) List(ctx context.Context, filter AlumniListFilter) ([]AlumniResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SyubiyahID != nil {
		domainFilter.Filters["syubiyah_id"] = *filter.SyubiyahID
	}
	if filter.GraduationYear != nil {
		domainFilter.Filters["graduation_year"] = *filter.GraduationYear
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	alumni, err := s.alumniRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.alumniRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AlumniResponse, len(alumni))
	for i := range alumni {
		responses[i] = *ToAlumniResponse(&alumni[i])
	}
	return responses, total, nil
}

// UpdateProfile updates an alumni's own profile
func (s *AlumniService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateAlumniRequest) (*AlumniResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSyubiyah(ctx, req.SyubiyahID); err != nil {
		return nil, err
	}

	if err := alumni.UpdateProfile(req.FullName, req.Phone, req.GraduationYear, req.SyubiyahID, req.Address); err != nil {
		return nil, err
	}

	if err := s.alumniRepo.Save(ctx, alumni); err != nil {
		return nil, err
	}
	return ToAlumniResponse(alumni), nil
}

// Verify marks a pending alumni as verified
func (s *AlumniService) Verify(ctx context.Context, id, verifierID uuid.UUID) (*AlumniResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := alumni.Verify(verifierID); err != nil {
		return nil, err
	}

	if err := s.alumniRepo.Save(ctx, alumni); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, alumni)

	return ToAlumniResponse(alumni), nil
}

// Reject marks a pending alumni as rejected with a reason
func (s *AlumniService) Reject(ctx context.Context, id, verifierID uuid.UUID, req RejectAlumniRequest) (*AlumniResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := alumni.Reject(verifierID, req.Reason); err != nil {
		return nil, err
	}

	if err := s.alumniRepo.Save(ctx, alumni); err != nil {
		return nil, err
	}
	return ToAlumniResponse(alumni), nil
}

// SetPhoto stores the uploaded profile photo URL
func (s *AlumniService) SetPhoto(ctx context.Context, id uuid.UUID, url string) (*AlumniResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alumni.SetPhoto(url)

	if err := s.alumniRepo.Save(ctx, alumni); err != nil {
		return nil, err
	}
	return ToAlumniResponse(alumni), nil
}

// Delete removes an alumni record
func (s *AlumniService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.alumniRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.alumniRepo.Delete(ctx, id)
}

func (s *AlumniService) checkSyubiyah(ctx context.Context, syubiyahID *uuid.UUID) error {
	if syubiyahID == nil {
		return nil
	}
	if _, err := s.syubiyahRepo.FindByID(ctx, *syubiyahID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("SYUBIYAH_NOT_FOUND", "Syubiyah not found")
		}
		return err
	}
	return nil
}

func (s *AlumniService) publishEvents(ctx context.Context, alumni *membership.Alumni) {
	if s.eventBus == nil {
		return
	}
	// Event delivery is best effort, failures do not roll back the write.
	_ = s.eventBus.Publish(ctx, alumni.GetDomainEvents()...)
	alumni.ClearDomainEvents()
}
