package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/shared"
)

// ProductService handles product operations within alumni stores
type ProductService struct {
	productRepo  marketplace.ProductRepository
	storeRepo    marketplace.StoreRepository
	categoryRepo marketplace.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo marketplace.ProductRepository,
	storeRepo marketplace.StoreRepository,
	categoryRepo marketplace.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
	}
}

// Create adds a product to a store owned by the requester
func (s *ProductService) Create(ctx context.Context, requesterID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
		}
		return nil, err
	}
	if store.OwnerID != requesterID {
		return nil, shared.ErrForbidden
	}
	if !store.IsActive() {
		return nil, shared.NewDomainError("STORE_SUSPENDED", "Cannot add products to a suspended store")
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	product, err := marketplace.NewProduct(req.StoreID, req.CategoryID, req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	if req.ImageURL != "" {
		product.SetImage(req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products matching the filter. A category filter with
// subtree enabled matches the whole category branch via its path prefix.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.StoreID != nil {
		domainFilter.Filters["store_id"] = *filter.StoreID
	}
	if filter.CategoryID != nil {
		if filter.Subtree {
			category, err := s.categoryRepo.FindByID(ctx, *filter.CategoryID)
			if err != nil {
				return nil, 0, err
			}
			domainFilter.Filters["category_path"] = category.Path
		} else {
			domainFilter.Filters["category_id"] = *filter.CategoryID
		}
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product. Only the owning store's owner may update it.
func (s *ProductService) Update(ctx context.Context, id, requesterID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, product, requesterID); err != nil {
		return nil, err
	}

	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
			}
			return nil, err
		}
	}

	if err := product.Update(req.CategoryID, req.Name, req.Description, req.Price, req.Stock); err != nil {
		return nil, err
	}
	if req.ImageURL != "" {
		product.SetImage(req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// SetStatus activates or deactivates a product
func (s *ProductService) SetStatus(ctx context.Context, id, requesterID uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, product, requesterID); err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, product, requesterID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) checkOwnership(ctx context.Context, product *marketplace.Product, requesterID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, product.StoreID)
	if err != nil {
		return err
	}
	if store.OwnerID != requesterID {
		return shared.ErrForbidden
	}
	return nil
}
