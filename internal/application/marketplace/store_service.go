package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// StoreService handles alumni store operations. Opening a store requires
// a verified alumni profile.
type StoreService struct {
	storeRepo  marketplace.StoreRepository
	alumniRepo membership.AlumniRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo marketplace.StoreRepository, alumniRepo membership.AlumniRepository) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		alumniRepo: alumniRepo,
	}
}

// Create opens a new store for a verified alumni
func (s *StoreService) Create(ctx context.Context, ownerID uuid.UUID, req CreateStoreRequest) (*StoreResponse, error) {
	alumni, err := s.alumniRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ALUMNI_NOT_FOUND", "Alumni profile not found")
		}
		return nil, err
	}
	if !alumni.IsVerified() {
		return nil, shared.NewDomainError("ALUMNI_NOT_VERIFIED", "Only verified alumni can open a store")
	}

	store, err := marketplace.NewStore(ownerID, req.Name, req.Description, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	existing, err := s.storeRepo.FindBySlug(ctx, store.Slug)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A store with this name already exists")
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	return ToStoreResponse(store), nil
}

// GetByID retrieves a store with its product count
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToStoreResponse(store)
	count, err := s.storeRepo.CountProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.ProductCount = &count

	return resp, nil
}

// GetBySlug retrieves a store by its slug
func (s *StoreService) GetBySlug(ctx context.Context, slug string) (*StoreResponse, error) {
	store, err := s.storeRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// List retrieves stores matching the filter
func (s *StoreService) List(ctx context.Context, filter StoreListFilter) ([]StoreResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	stores, err := s.storeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.storeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = *ToStoreResponse(&stores[i])
	}
	return responses, total, nil
}

// Update updates a store's profile. Only the owner may update it.
func (s *StoreService) Update(ctx context.Context, id, requesterID uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != requesterID {
		return nil, shared.ErrForbidden
	}

	if err := store.Update(req.Name, req.Description, req.Phone, req.Address); err != nil {
		return nil, err
	}

	existing, err := s.storeRepo.FindBySlug(ctx, store.Slug)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != store.ID {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A store with this name already exists")
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// Suspend takes a store offline
func (s *StoreService) Suspend(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.Suspend(); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// Reactivate puts a suspended store back online
func (s *StoreService) Reactivate(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := store.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// Delete removes a store that has no products left
func (s *StoreService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if store.OwnerID != requesterID {
		return shared.ErrForbidden
	}

	count, err := s.storeRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_PRODUCTS", "Cannot delete store with products")
	}

	return s.storeRepo.Delete(ctx, id)
}
