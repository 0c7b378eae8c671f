package handler

import (
	"github.com/gin-gonic/gin"

	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// SyubiyahHandler handles regional chapter endpoints
type SyubiyahHandler struct {
	BaseHandler
	syubiyahService *membershipapp.SyubiyahService
}

func NewSyubiyahHandler(syubiyahService *membershipapp.SyubiyahService) *SyubiyahHandler {
	return &SyubiyahHandler{syubiyahService: syubiyahService}
}

// RegisterRoutes registers syubiyah routes. Listing is public so the
// registration form can offer chapters without an account.
func (h *SyubiyahHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/syubiyah")
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	admin := r.ProtectedGroup("/syubiyah", middleware.RequireResource("syubiyah"))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a regional chapter
// @Tags syubiyah
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body membershipapp.SyubiyahRequest true "Chapter"
// @Success 201 {object} dto.Response{data=membershipapp.SyubiyahResponse}
// @Failure 400 {object} dto.Response
// @Router /syubiyah [post]
func (h *SyubiyahHandler) Create(c *gin.Context) {
	var req membershipapp.SyubiyahRequest
	if !h.BindJSON(c, &req) {
		return
	}

	syubiyah, err := h.syubiyahService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, syubiyah)
}

// List godoc
// @Summary List regional chapters
// @Tags syubiyah
// @Produce json
// @Param search query string false "Search by name or region"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]membershipapp.SyubiyahResponse}
// @Router /syubiyah [get]
func (h *SyubiyahHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}
	query.Normalize()

	chapters, total, err := h.syubiyahService.List(c.Request.Context(), query.Search, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, chapters, total, query.Page, query.PageSize)
}

// GetByID godoc
// @Summary Get a regional chapter by ID
// @Tags syubiyah
// @Produce json
// @Param id path string true "Syubiyah ID"
// @Success 200 {object} dto.Response{data=membershipapp.SyubiyahResponse}
// @Failure 404 {object} dto.Response
// @Router /syubiyah/{id} [get]
func (h *SyubiyahHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	syubiyah, err := h.syubiyahService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, syubiyah)
}

// Update godoc
// @Summary Update a regional chapter
// @Tags syubiyah
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syubiyah ID"
// @Param request body membershipapp.SyubiyahRequest true "Chapter"
// @Success 200 {object} dto.Response{data=membershipapp.SyubiyahResponse}
// @Router /syubiyah/{id} [put]
func (h *SyubiyahHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membershipapp.SyubiyahRequest
	if !h.BindJSON(c, &req) {
		return
	}

	syubiyah, err := h.syubiyahService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, syubiyah)
}

// Delete godoc
// @Summary Delete a regional chapter
// @Description Chapters still referenced by alumni cannot be deleted.
// @Tags syubiyah
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syubiyah ID"
// @Success 204
// @Failure 400 {object} dto.Response
// @Router /syubiyah/{id} [delete]
func (h *SyubiyahHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.syubiyahService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
