package handler

import (
	"github.com/gin-gonic/gin"

	marketplaceapp "github.com/ikada/backend/internal/application/marketplace"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// StoreHandler handles alumni store endpoints
type StoreHandler struct {
	BaseHandler
	storeService *marketplaceapp.StoreService
}

func NewStoreHandler(storeService *marketplaceapp.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers store routes. Browsing is public, opening
// and managing a store requires a verified alumni account.
func (h *StoreHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/marketplace/stores")
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)
	public.GET("/slug/:slug", h.GetBySlug)

	owner := r.ProtectedGroup("/marketplace/stores")
	owner.POST("", h.Create)
	owner.PUT("/:id", h.Update)
	owner.DELETE("/:id", h.Delete)

	admin := r.ProtectedGroup("/marketplace/stores", middleware.RequirePermission("marketplace:moderate"))
	admin.POST("/:id/suspend", h.Suspend)
	admin.POST("/:id/reactivate", h.Reactivate)
}

// Create godoc
// @Summary Open a store
// @Description An alumni can own at most one store.
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body marketplaceapp.CreateStoreRequest true "Store"
// @Success 201 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Failure 400 {object} dto.Response
// @Router /marketplace/stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	ownerID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	var req marketplaceapp.CreateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, store)
}

// List godoc
// @Summary List stores
// @Tags marketplace
// @Produce json
// @Param search query string false "Search by name"
// @Param status query string false "Filter by status" Enums(active, suspended)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]marketplaceapp.StoreResponse}
// @Router /marketplace/stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	var filter marketplaceapp.StoreListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	stores, total, err := h.storeService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, stores, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a store by ID
// @Tags marketplace
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Failure 404 {object} dto.Response
// @Router /marketplace/stores/{id} [get]
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// GetBySlug godoc
// @Summary Get a store by slug
// @Tags marketplace
// @Produce json
// @Param slug path string true "Store slug"
// @Success 200 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Failure 404 {object} dto.Response
// @Router /marketplace/stores/slug/{slug} [get]
func (h *StoreHandler) GetBySlug(c *gin.Context) {
	store, err := h.storeService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Update godoc
// @Summary Update a store profile
// @Description Only the store owner can update the profile.
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Param request body marketplaceapp.UpdateStoreRequest true "Store"
// @Success 200 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Failure 403 {object} dto.Response
// @Router /marketplace/stores/{id} [put]
func (h *StoreHandler) Update(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req marketplaceapp.UpdateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), id, requesterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Suspend godoc
// @Summary Suspend a store
// @Description Suspending a store hides it and all its products.
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Router /marketplace/stores/{id}/suspend [post]
func (h *StoreHandler) Suspend(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.Suspend(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Reactivate godoc
// @Summary Reactivate a suspended store
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Success 200 {object} dto.Response{data=marketplaceapp.StoreResponse}
// @Router /marketplace/stores/{id}/reactivate [post]
func (h *StoreHandler) Reactivate(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.Reactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Delete godoc
// @Summary Close a store
// @Description Only the store owner or an admin can close a store.
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Success 204
// @Router /marketplace/stores/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.storeService.Delete(c.Request.Context(), id, requesterID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
