package cms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

// PostService handles news and blog posts
type PostService struct {
	postRepo     cms.PostRepository
	categoryRepo cms.PostCategoryRepository
	logger       *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(postRepo cms.PostRepository, categoryRepo cms.PostCategoryRepository, logger *zap.Logger) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new draft post authored by the given user
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid category ID")
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Post category does not exist")
	}

	post, err := cms.NewPost(authorID, categoryID, req.Title, req.Excerpt, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, post.Slug, uuid.Nil); err != nil {
		return nil, err
	}
	if req.CoverURL != "" {
		post.SetCover(req.CoverURL)
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("slug", post.Slug))

	resp := ToPostResponse(post)
	return &resp, nil
}

// GetByID retrieves a post by ID
func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// GetBySlug retrieves a published post for the public site and bumps
// its view counter.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*PostResponse, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, shared.ErrNotFound
	}

	if err := s.postRepo.IncrementViewCount(ctx, post.ID); err != nil {
		// The read still succeeds, only the counter is stale
		s.logger.Warn("Failed to increment view count",
			zap.String("post_id", post.ID.String()), zap.Error(err))
	} else {
		post.ViewCount++
	}

	resp := ToPostResponse(post)
	return &resp, nil
}

// List retrieves posts matching the filter
func (s *PostService) List(ctx context.Context, req PostListFilter, filter shared.Filter) (*shared.Paginated[PostResponse], error) {
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.CategoryID != "" {
		filter.Filters["category_id"] = req.CategoryID
	}
	if req.AuthorID != "" {
		filter.Filters["author_id"] = req.AuthorID
	}

	posts, err := s.postRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = ToPostResponse(&posts[i])
		// Full content is only returned on single-post reads
		responses[i].Content = ""
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// ListPublished retrieves published posts for the public site
func (s *PostService) ListPublished(ctx context.Context, categoryID string, filter shared.Filter) (*shared.Paginated[PostResponse], error) {
	return s.List(ctx, PostListFilter{Status: string(cms.PostStatusPublished), CategoryID: categoryID}, filter)
}

// Update updates a post's editorial fields
func (s *PostService) Update(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid category ID")
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Post category does not exist")
	}

	if err := post.Update(categoryID, req.Title, req.Excerpt, req.Content); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, post.Slug, post.ID); err != nil {
		return nil, err
	}
	post.SetCover(req.CoverURL)

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	resp := ToPostResponse(post)
	return &resp, nil
}

// Publish makes a post publicly visible
func (s *PostService) Publish(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.transition(ctx, id, (*cms.Post).Publish)
}

// Unpublish reverts a post to draft
func (s *PostService) Unpublish(ctx context.Context, id uuid.UUID) (*PostResponse, error) {
	return s.transition(ctx, id, (*cms.Post).Unpublish)
}

// Delete removes a post and its comments
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Post deleted", zap.String("post_id", id.String()))
	return nil
}

func (s *PostService) transition(ctx context.Context, id uuid.UUID, change func(*cms.Post) error) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(post); err != nil {
		return nil, err
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

func (s *PostService) checkSlug(ctx context.Context, slug string, excludeID uuid.UUID) error {
	existing, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return shared.NewDomainError("DUPLICATE_TITLE", "A post with this title already exists")
	}
	return nil
}
