package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// SyubiyahService handles regional chapter administration
type SyubiyahService struct {
	syubiyahRepo membership.SyubiyahRepository
	alumniRepo   membership.AlumniRepository
}

// NewSyubiyahService creates a new SyubiyahService
func NewSyubiyahService(syubiyahRepo membership.SyubiyahRepository, alumniRepo membership.AlumniRepository) *SyubiyahService {
	return &SyubiyahService{
		syubiyahRepo: syubiyahRepo,
		alumniRepo:   alumniRepo,
	}
}

// Create creates a new syubiyah
func (s *SyubiyahService) Create(ctx context.Context, req SyubiyahRequest) (*SyubiyahResponse, error) {
	existing, err := s.syubiyahRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A syubiyah with this name already exists")
	}

	syubiyah, err := membership.NewSyubiyah(req.Name, req.Region, req.City, req.Address)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		syubiyah.SetActive(*req.IsActive)
	}

	if err := s.syubiyahRepo.Save(ctx, syubiyah); err != nil {
		return nil, err
	}
	return ToSyubiyahResponse(syubiyah), nil
}

// GetByID retrieves a syubiyah with its alumni count
func (s *SyubiyahService) GetByID(ctx context.Context, id uuid.UUID) (*SyubiyahResponse, error) {
	syubiyah, err := s.syubiyahRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToSyubiyahResponse(syubiyah)
	count, err := s.alumniRepo.CountBySyubiyah(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.AlumniCount = &count

	return resp, nil
}

// List retrieves all syubiyah
func (s *SyubiyahService) List(ctx context.Context, search string, page, pageSize int) ([]SyubiyahResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = search
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if page > 0 && pageSize > 0 {
		domainFilter.Page = page
		domainFilter.PageSize = pageSize
	}

	chapters, err := s.syubiyahRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.syubiyahRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SyubiyahResponse, len(chapters))
	for i := range chapters {
		responses[i] = *ToSyubiyahResponse(&chapters[i])
	}
	return responses, total, nil
}

// Update updates a syubiyah
func (s *SyubiyahService) Update(ctx context.Context, id uuid.UUID, req SyubiyahRequest) (*SyubiyahResponse, error) {
	syubiyah, err := s.syubiyahRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.syubiyahRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A syubiyah with this name already exists")
	}

	if err := syubiyah.Update(req.Name, req.Region, req.City, req.Address); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		syubiyah.SetActive(*req.IsActive)
	}

	if err := s.syubiyahRepo.Save(ctx, syubiyah); err != nil {
		return nil, err
	}
	return ToSyubiyahResponse(syubiyah), nil
}

// Delete removes a syubiyah that no alumni references
func (s *SyubiyahService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.syubiyahRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.alumniRepo.CountBySyubiyah(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_MEMBERS", "Cannot delete syubiyah with registered alumni")
	}

	return s.syubiyahRepo.Delete(ctx, id)
}
