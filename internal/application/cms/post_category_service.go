package cms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

// PostCategoryService handles the flat news categories
type PostCategoryService struct {
	categoryRepo cms.PostCategoryRepository
	postRepo     cms.PostRepository
	logger       *zap.Logger
}

// NewPostCategoryService creates a new post category service
func NewPostCategoryService(categoryRepo cms.PostCategoryRepository, postRepo cms.PostRepository, logger *zap.Logger) *PostCategoryService {
	return &PostCategoryService{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		logger:       logger,
	}
}

// Create creates a new post category
func (s *PostCategoryService) Create(ctx context.Context, req PostCategoryRequest) (*PostCategoryResponse, error) {
	if err := s.checkName(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category, err := cms.NewPostCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToPostCategoryResponse(category)
	return &resp, nil
}

// List retrieves all post categories with their post counts
func (s *PostCategoryService) List(ctx context.Context) ([]PostCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]PostCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToPostCategoryResponse(&categories[i])
		if count, err := s.postRepo.CountByCategory(ctx, categories[i].ID); err == nil {
			responses[i].PostCount = &count
		}
	}
	return responses, nil
}

// Update renames a post category
func (s *PostCategoryService) Update(ctx context.Context, id uuid.UUID, req PostCategoryRequest) (*PostCategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, req.Name, id); err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToPostCategoryResponse(category)
	return &resp, nil
}

// Delete removes a post category unless posts still reference it
func (s *PostCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.postRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_POSTS", "Category still has posts and cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Post category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *PostCategoryService) checkName(ctx context.Context, name string, excludeID uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return shared.NewDomainError("DUPLICATE_NAME", "A category with this name already exists")
	}
	return nil
}
