package cms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

// CommentService handles reader comments and their moderation
type CommentService struct {
	commentRepo cms.CommentRepository
	postRepo    cms.PostRepository
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo cms.CommentRepository, postRepo cms.PostRepository, logger *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// Create creates a pending comment on a published post. This is the
// public endpoint, so the post must actually be visible.
func (s *CommentService) Create(ctx context.Context, postID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, shared.ErrNotFound
	}

	comment, err := cms.NewComment(postID, req.AuthorName, req.AuthorEmail, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment submitted",
		zap.String("comment_id", comment.ID.String()),
		zap.String("post_id", postID.String()))

	resp := ToCommentResponse(comment)
	return &resp, nil
}

// ListByPost retrieves approved comments on a post for the public site
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]CommentResponse, error) {
	approved := cms.CommentStatusApproved
	comments, err := s.commentRepo.FindByPost(ctx, postID, &approved)
	if err != nil {
		return nil, err
	}
	return toCommentResponses(comments), nil
}

// List retrieves comments for the moderation queue
func (s *CommentService) List(ctx context.Context, req CommentListFilter, filter shared.Filter) (*shared.Paginated[CommentResponse], error) {
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.PostID != "" {
		filter.Filters["post_id"] = req.PostID
	}

	comments, err := s.commentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.commentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(toCommentResponses(comments), total, filter.Page, filter.PageSize), nil
}

// Approve makes a comment publicly visible
func (s *CommentService) Approve(ctx context.Context, id, moderatorID uuid.UUID) error {
	return s.moderate(ctx, id, func(c *cms.Comment) error { return c.Approve(moderatorID) })
}

// Reject hides a comment
func (s *CommentService) Reject(ctx context.Context, id, moderatorID uuid.UUID) error {
	return s.moderate(ctx, id, func(c *cms.Comment) error { return c.Reject(moderatorID) })
}

// Delete removes a comment
func (s *CommentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *CommentService) moderate(ctx context.Context, id uuid.UUID, change func(*cms.Comment) error) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(comment); err != nil {
		return err
	}
	return s.commentRepo.Save(ctx, comment)
}

func toCommentResponses(comments []cms.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return responses
}
