package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// MustahiqService handles aid-recipient record administration
type MustahiqService struct {
	mustahiqRepo membership.MustahiqRepository
	syubiyahRepo membership.SyubiyahRepository
}

// NewMustahiqService creates a new MustahiqService
func NewMustahiqService(mustahiqRepo membership.MustahiqRepository, syubiyahRepo membership.SyubiyahRepository) *MustahiqService {
	return &MustahiqService{
		mustahiqRepo: mustahiqRepo,
		syubiyahRepo: syubiyahRepo,
	}
}

// Create creates a new mustahiq record
func (s *MustahiqService) Create(ctx context.Context, req MustahiqRequest) (*MustahiqResponse, error) {
	if err := s.checkSyubiyah(ctx, req.SyubiyahID); err != nil {
		return nil, err
	}

	mustahiq, err := membership.NewMustahiq(req.FullName, membership.MustahiqCategory(req.Category), req.SyubiyahID, req.Address, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		mustahiq.SetActive(*req.IsActive)
	}

	if err := s.mustahiqRepo.Save(ctx, mustahiq); err != nil {
		return nil, err
	}
	return ToMustahiqResponse(mustahiq), nil
}

// GetByID retrieves a mustahiq record
func (s *MustahiqService) GetByID(ctx context.Context, id uuid.UUID) (*MustahiqResponse, error) {
	mustahiq, err := s.mustahiqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMustahiqResponse(mustahiq), nil
}

// List retrieves mustahiq records matching the filter
func (s *MustahiqService) List(ctx context.Context, filter MustahiqListFilter) ([]MustahiqResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.SyubiyahID != nil {
		domainFilter.Filters["syubiyah_id"] = *filter.SyubiyahID
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	records, err := s.mustahiqRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.mustahiqRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MustahiqResponse, len(records))
	for i := range records {
		responses[i] = *ToMustahiqResponse(&records[i])
	}
	return responses, total, nil
}

// Update updates a mustahiq record
func (s *MustahiqService) Update(ctx context.Context, id uuid.UUID, req MustahiqRequest) (*MustahiqResponse, error) {
	mustahiq, err := s.mustahiqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSyubiyah(ctx, req.SyubiyahID); err != nil {
		return nil, err
	}

	if err := mustahiq.Update(req.FullName, membership.MustahiqCategory(req.Category), req.SyubiyahID, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		mustahiq.SetActive(*req.IsActive)
	}

	if err := s.mustahiqRepo.Save(ctx, mustahiq); err != nil {
		return nil, err
	}
	return ToMustahiqResponse(mustahiq), nil
}

// Delete removes a mustahiq record
func (s *MustahiqService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustahiqRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.mustahiqRepo.Delete(ctx, id)
}

func (s *MustahiqService) checkSyubiyah(ctx context.Context, syubiyahID *uuid.UUID) error {
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
