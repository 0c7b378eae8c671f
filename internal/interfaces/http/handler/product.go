package handler

import (
	"github.com/gin-gonic/gin"

	marketplaceapp "github.com/ikada/backend/internal/application/marketplace"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// ProductHandler handles marketplace product endpoints
type ProductHandler struct {
	BaseHandler
	productService *marketplaceapp.ProductService
}

func NewProductHandler(productService *marketplaceapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes. Browsing is public,
// managing products is restricted to the owning store.
func (h *ProductHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/marketplace/products")
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	owner := r.ProtectedGroup("/marketplace/products")
	owner.POST("", h.Create)
	owner.PUT("/:id", h.Update)
	owner.POST("/:id/activate", h.Activate)
	owner.POST("/:id/deactivate", h.Deactivate)
	owner.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Add a product to a store
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body marketplaceapp.CreateProductRequest true "Product"
// @Success 201 {object} dto.Response{data=marketplaceapp.ProductResponse}
// @Failure 403 {object} dto.Response
// @Router /marketplace/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	var req marketplaceapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), requesterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @Summary List products
// @Tags marketplace
// @Produce json
// @Param search query string false "Search by name"
// @Param storeId query string false "Filter by store"
// @Param categoryId query string false "Filter by category"
// @Param subtree query bool false "Include descendant categories"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]marketplaceapp.ProductResponse}
// @Router /marketplace/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter marketplaceapp.ProductListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a product by ID
// @Tags marketplace
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /marketplace/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @Summary Update a product
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body marketplaceapp.UpdateProductRequest true "Product"
// @Success 200 {object} dto.Response{data=marketplaceapp.ProductResponse}
// @Failure 403 {object} dto.Response
// @Router /marketplace/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req marketplaceapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, requesterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate godoc
// @Summary Put a product back on sale
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.ProductResponse}
// @Router /marketplace/products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	h.setStatus(c, true)
}

// Deactivate godoc
// @Summary Take a product off sale
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.ProductResponse}
// @Router /marketplace/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *ProductHandler) setStatus(c *gin.Context, active bool) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.SetStatus(c.Request.Context(), id, requesterID, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /marketplace/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id, requesterID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
