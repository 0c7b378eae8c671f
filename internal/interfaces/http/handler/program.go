package handler

import (
	"github.com/gin-gonic/gin"

	donationapp "github.com/ikada/backend/internal/application/donation"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// ProgramHandler handles donation program endpoints
type ProgramHandler struct {
	BaseHandler
	programService *donationapp.ProgramService
}

func NewProgramHandler(programService *donationapp.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// RegisterRoutes registers program routes. Browsing programs is public.
func (h *ProgramHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/programs")
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)
	public.GET("/slug/:slug", h.GetBySlug)

	admin := r.ProtectedGroup("/programs", middleware.RequireResource("donation"))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.POST("/:id/close", h.Close)
	admin.POST("/:id/reopen", h.Reopen)
	admin.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a donation program
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body donationapp.ProgramRequest true "Program"
// @Success 201 {object} dto.Response{data=donationapp.ProgramResponse}
// @Failure 400 {object} dto.Response
// @Router /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var req donationapp.ProgramRequest
	if !h.BindJSON(c, &req) {
		return
	}

	program, err := h.programService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, program)
}

type programListQuery struct {
	dto.ListRequest
	donationapp.ProgramListFilter
}

// List godoc
// @Summary List donation programs
// @Tags donations
// @Produce json
// @Param status query string false "Filter by status" Enums(active, closed)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]donationapp.ProgramResponse}
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	var query programListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.programService.List(c.Request.Context(), query.ProgramListFilter, listFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary Get a donation program by ID
// @Tags donations
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} dto.Response{data=donationapp.ProgramResponse}
// @Failure 404 {object} dto.Response
// @Router /programs/{id} [get]
func (h *ProgramHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, program)
}

// GetBySlug godoc
// @Summary Get a donation program by slug
// @Tags donations
// @Produce json
// @Param slug path string true "Program slug"
// @Success 200 {object} dto.Response{data=donationapp.ProgramResponse}
// @Failure 404 {object} dto.Response
// @Router /programs/slug/{slug} [get]
func (h *ProgramHandler) GetBySlug(c *gin.Context) {
	program, err := h.programService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, program)
}

// Update godoc
// @Summary Update a donation program
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param request body donationapp.ProgramRequest true "Program"
// @Success 200 {object} dto.Response{data=donationapp.ProgramResponse}
// @Router /programs/{id} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req donationapp.ProgramRequest
	if !h.BindJSON(c, &req) {
		return
	}

	program, err := h.programService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, program)
}

// Close godoc
// @Summary Close a donation program
// @Description Closed programs stop accepting new donations.
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 204
// @Router /programs/{id}/close [post]
func (h *ProgramHandler) Close(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.Close(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reopen godoc
// @Summary Reopen a closed donation program
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 204
// @Router /programs/{id}/reopen [post]
func (h *ProgramHandler) Reopen(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.Reopen(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete godoc
// @Summary Delete a donation program
// @Description Programs that already received donations cannot be deleted.
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 204
// @Failure 400 {object} dto.Response
// @Router /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.programService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
