package handler

import (
	"github.com/gin-gonic/gin"

	marketplaceapp "github.com/ikada/backend/internal/application/marketplace"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// CategoryHandler handles marketplace category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *marketplaceapp.CategoryService
}

func NewCategoryHandler(categoryService *marketplaceapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes. Browsing is public.
func (h *CategoryHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/marketplace/categories")
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	admin := r.ProtectedGroup("/marketplace/categories", middleware.RequireResource("marketplace"))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a marketplace category
// @Description Categories nest up to three levels deep.
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body marketplaceapp.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.Response{data=marketplaceapp.CategoryResponse}
// @Failure 400 {object} dto.Response
// @Router /marketplace/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req marketplaceapp.CreateCategoryRequest
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
// @Summary List marketplace categories
// @Tags marketplace
// @Produce json
// @Param isActive query bool false "Filter by active flag"
// @Param level query int false "Filter by tree level"
// @Param parentId query string false "Filter by parent, 'root' for top level"
// @Param hierarchical query bool false "Return the category tree"
// @Param includeCount query bool false "Include product counts"
// @Success 200 {object} dto.Response{data=[]marketplaceapp.CategoryResponse}
// @Router /marketplace/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var filter marketplaceapp.CategoryListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetByID godoc
// @Summary Get a marketplace category by ID
// @Tags marketplace
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.CategoryResponse}
// @Failure 404 {object} dto.Response
// @Router /marketplace/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Update godoc
// @Summary Update a marketplace category
// @Description Changing the parent reparents the whole subtree.
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body marketplaceapp.UpdateCategoryRequest true "Category"
// @Success 200 {object} dto.Response{data=marketplaceapp.CategoryResponse}
// @Failure 400 {object} dto.Response
// @Router /marketplace/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req marketplaceapp.UpdateCategoryRequest
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
// @Summary Delete a marketplace category
// @Description Categories with children or products cannot be deleted.
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Router /marketplace/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Category deleted"})
}
