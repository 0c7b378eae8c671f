package cms

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// Comment is a reader comment on a post. Comments from the public site
// start pending and only show up once a moderator approves them.
type Comment struct {
	shared.BaseAggregateRoot
	PostID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	AuthorName  string        `gorm:"type:varchar(100);not null"`
	AuthorEmail string        `gorm:"type:varchar(150)"`
	Body        string        `gorm:"type:text;not null"`
	Status      CommentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ModeratedBy *uuid.UUID    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "post_comments"
}

// NewComment creates a new pending comment on a post
func NewComment(postID uuid.UUID, authorName, authorEmail, body string) (*Comment, error) {
	if strings.TrimSpace(authorName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Comment author name cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Comment body cannot be empty")
	}
	if len(body) > 2000 {
		return nil, shared.NewDomainError("INVALID_BODY", "Comment body cannot exceed 2000 characters")
	}

	return &Comment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PostID:            postID,
		AuthorName:        authorName,
		AuthorEmail:       strings.ToLower(authorEmail),
		Body:              body,
		Status:            CommentStatusPending,
	}, nil
}

// Approve marks the comment as publicly visible
func (c *Comment) Approve(moderatorID uuid.UUID) error {
	if c.Status == CommentStatusApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Comment is already approved")
	}
	c.Status = CommentStatusApproved
	c.ModeratedBy = &moderatorID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Reject hides the comment
func (c *Comment) Reject(moderatorID uuid.UUID) error {
	if c.Status == CommentStatusRejected {
		return shared.NewDomainError("ALREADY_REJECTED", "Comment is already rejected")
	}
	c.Status = CommentStatusRejected
	c.ModeratedBy = &moderatorID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
