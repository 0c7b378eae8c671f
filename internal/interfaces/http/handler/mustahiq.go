package handler

import (
	"github.com/gin-gonic/gin"

	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// MustahiqHandler handles aid recipient endpoints
type MustahiqHandler struct {
	BaseHandler
	mustahiqService *membershipapp.MustahiqService
}

func NewMustahiqHandler(mustahiqService *membershipapp.MustahiqService) *MustahiqHandler {
	return &MustahiqHandler{mustahiqService: mustahiqService}
}

// RegisterRoutes registers mustahiq routes
func (h *MustahiqHandler) RegisterRoutes(r *router.Router) {
	mustahiq := r.ProtectedGroup("/mustahiq", middleware.RequireResource("mustahiq"))
	mustahiq.POST("", h.Create)
	mustahiq.GET("", h.List)
	mustahiq.GET("/:id", h.GetByID)
	mustahiq.PUT("/:id", h.Update)
	mustahiq.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Register an aid recipient
// @Tags mustahiq
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body membershipapp.MustahiqRequest true "Recipient"
// @Success 201 {object} dto.Response{data=membershipapp.MustahiqResponse}
// @Router /mustahiq [post]
func (h *MustahiqHandler) Create(c *gin.Context) {
	var req membershipapp.MustahiqRequest
	if !h.BindJSON(c, &req) {
		return
	}

	mustahiq, err := h.mustahiqService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, mustahiq)
}

// List godoc
// @Summary List aid recipients
// @Tags mustahiq
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category" Enums(fakir, miskin, yatim, gharimin, other)
// @Param syubiyahId query string false "Filter by syubiyah"
// @Param isActive query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]membershipapp.MustahiqResponse}
// @Router /mustahiq [get]
func (h *MustahiqHandler) List(c *gin.Context) {
	var filter membershipapp.MustahiqListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	recipients, total, err := h.mustahiqService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, recipients, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get an aid recipient by ID
// @Tags mustahiq
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mustahiq ID"
// @Success 200 {object} dto.Response{data=membershipapp.MustahiqResponse}
// @Failure 404 {object} dto.Response
// @Router /mustahiq/{id} [get]
func (h *MustahiqHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	mustahiq, err := h.mustahiqService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mustahiq)
}

// Update godoc
// @Summary Update an aid recipient
// @Tags mustahiq
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mustahiq ID"
// @Param request body membershipapp.MustahiqRequest true "Recipient"
// @Success 200 {object} dto.Response{data=membershipapp.MustahiqResponse}
// @Router /mustahiq/{id} [put]
func (h *MustahiqHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membershipapp.MustahiqRequest
	if !h.BindJSON(c, &req) {
		return
	}

	mustahiq, err := h.mustahiqService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mustahiq)
}

// Delete godoc
// @Summary Delete an aid recipient
// @Tags mustahiq
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mustahiq ID"
// @Success 204
// @Router /mustahiq/{id} [delete]
func (h *MustahiqHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.mustahiqService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
