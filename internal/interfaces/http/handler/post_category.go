package handler

import (
	"github.com/gin-gonic/gin"

	cmsapp "github.com/ikada/backend/internal/application/cms"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// PostCategoryHandler handles post category endpoints
type PostCategoryHandler struct {
	BaseHandler
	categoryService *cmsapp.PostCategoryService
}

func NewPostCategoryHandler(categoryService *cmsapp.PostCategoryService) *PostCategoryHandler {
	return &PostCategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers post category routes
func (h *PostCategoryHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/post-categories")
	public.GET("", h.List)

	admin := r.ProtectedGroup("/post-categories", middleware.RequireResource("post"))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a post category
// @Tags post-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body cmsapp.PostCategoryRequest true "Category"
// @Success 201 {object} dto.Response{data=cmsapp.PostCategoryResponse}
// @Failure 400 {object} dto.Response
// @Router /post-categories [post]
func (h *PostCategoryHandler) Create(c *gin.Context) {
	var req cmsapp.PostCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List godoc
// @Summary List post categories
// @Tags post-categories
// @Produce json
// @Success 200 {object} dto.Response{data=[]cmsapp.PostCategoryResponse}
// @Router /post-categories [get]
func (h *PostCategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Update godoc
// @Summary Rename a post category
// @Tags post-categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body cmsapp.PostCategoryRequest true "Category"
// @Success 200 {object} dto.Response{data=cmsapp.PostCategoryResponse}
// @Router /post-categories/{id} [put]
func (h *PostCategoryHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req cmsapp.PostCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @Summary Delete a post category
// @Description Categories still referenced by posts cannot be deleted.
// @Tags post-categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 400 {object} dto.Response
// @Router /post-categories/{id} [delete]
func (h *PostCategoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
