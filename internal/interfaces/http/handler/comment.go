package handler

import (
	"github.com/gin-gonic/gin"

	cmsapp "github.com/ikada/backend/internal/application/cms"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// CommentHandler handles post comment endpoints
type CommentHandler struct {
	BaseHandler
	commentService *cmsapp.CommentService
}

func NewCommentHandler(commentService *cmsapp.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes. Commenting and reading
// approved comments is public, moderation requires permission.
func (h *CommentHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/posts")
	public.POST("/:id/comments", h.Create)
	public.GET("/:id/comments", h.ListByPost)

	admin := r.ProtectedGroup("/comments", middleware.RequirePermission("comment:moderate"))
	admin.GET("", h.List)
	admin.POST("/:id/approve", h.Approve)
	admin.POST("/:id/reject", h.Reject)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Comment on a published post
// @Description New comments enter moderation and are hidden until approved.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body cmsapp.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.Response{data=cmsapp.CommentResponse}
// @Failure 404 {object} dto.Response
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req cmsapp.CreateCommentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, comment)
}

// ListByPost godoc
// @Summary List approved comments of a post
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.Response{data=[]cmsapp.CommentResponse}
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comments)
}

type commentListQuery struct {
	dto.ListRequest
	cmsapp.CommentListFilter
}

// List godoc
// @Summary List comments for moderation
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param postId query string false "Filter by post"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]cmsapp.CommentResponse}
// @Router /comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	var query commentListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.commentService.List(c.Request.Context(), query.CommentListFilter, listFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Approve godoc
// @Summary Approve a pending comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Router /comments/{id}/approve [post]
func (h *CommentHandler) Approve(c *gin.Context) {
	moderatorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Approve(c.Request.Context(), id, moderatorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reject godoc
// @Summary Reject a pending comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Router /comments/{id}/reject [post]
func (h *CommentHandler) Reject(c *gin.Context) {
	moderatorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Reject(c.Request.Context(), id, moderatorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
