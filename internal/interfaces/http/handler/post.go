package handler

import (
	"github.com/gin-gonic/gin"

	cmsapp "github.com/ikada/backend/internal/application/cms"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// PostHandler handles news and article endpoints
type PostHandler struct {
	BaseHandler
	postService *cmsapp.PostService
}

func NewPostHandler(postService *cmsapp.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes registers post routes. Published content is public,
// authoring requires the post resource permission.
func (h *PostHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/posts")
	public.GET("/published", h.ListPublished)
	public.GET("/slug/:slug", h.GetBySlug)

	admin := r.ProtectedGroup("/posts", middleware.RequireResource("post"))
	admin.POST("", h.Create)
	admin.GET("", h.List)
	admin.GET("/:id", h.GetByID)
	admin.PUT("/:id", h.Update)
	admin.POST("/:id/publish", h.Publish)
	admin.POST("/:id/unpublish", h.Unpublish)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a draft post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body cmsapp.CreatePostRequest true "Post"
// @Success 201 {object} dto.Response{data=cmsapp.PostResponse}
// @Failure 400 {object} dto.Response
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	authorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	var req cmsapp.CreatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

type postListQuery struct {
	dto.ListRequest
	cmsapp.PostListFilter
}

// List godoc
// @Summary List posts including drafts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(draft, published)
// @Param categoryId query string false "Filter by category"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]cmsapp.PostResponse}
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var query postListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.postService.List(c.Request.Context(), query.PostListFilter, listFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListPublished godoc
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param categoryId query string false "Filter by category"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]cmsapp.PostResponse}
// @Router /posts/published [get]
func (h *PostHandler) ListPublished(c *gin.Context) {
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}
	categoryID := c.Query("categoryId")

	result, err := h.postService.ListPublished(c.Request.Context(), categoryID, listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.Response{data=cmsapp.PostResponse}
// @Failure 404 {object} dto.Response
// @Router /posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// GetBySlug godoc
// @Summary Get a published post by slug
// @Description Reading a post by slug increments its view counter.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.Response{data=cmsapp.PostResponse}
// @Failure 404 {object} dto.Response
// @Router /posts/slug/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body cmsapp.UpdatePostRequest true "Post"
// @Success 200 {object} dto.Response{data=cmsapp.PostResponse}
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req cmsapp.UpdatePostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Publish godoc
// @Summary Publish a draft post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.Response{data=cmsapp.PostResponse}
// @Failure 400 {object} dto.Response
// @Router /posts/{id}/publish [post]
func (h *PostHandler) Publish(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Unpublish godoc
// @Summary Take a published post back to draft
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.Response{data=cmsapp.PostResponse}
// @Router /posts/{id}/unpublish [post]
func (h *PostHandler) Unpublish(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.Unpublish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
