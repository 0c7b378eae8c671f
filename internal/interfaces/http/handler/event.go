package handler

import (
	"github.com/gin-gonic/gin"

	eventapp "github.com/ikada/backend/internal/application/event"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// EventHandler handles event and registration endpoints
type EventHandler struct {
	BaseHandler
	eventService        *eventapp.EventService
	registrationService *eventapp.RegistrationService
}

func NewEventHandler(eventService *eventapp.EventService, registrationService *eventapp.RegistrationService) *EventHandler {
	return &EventHandler{eventService: eventService, registrationService: registrationService}
}

// RegisterRoutes registers event routes. Browsing open events and
// registering is public, event management requires permission.
func (h *EventHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/events")
	public.GET("", h.List)
	public.GET("/slug/:slug", h.GetBySlug)
	public.POST("/:id/register", h.Register)

	admin := r.ProtectedGroup("/events", middleware.RequireResource("event"))
	admin.POST("", h.Create)
	admin.GET("/:id", h.GetByID)
	admin.PUT("/:id", h.Update)
	admin.POST("/:id/open", h.Open)
	admin.POST("/:id/close", h.Close)
	admin.DELETE("/:id", h.Delete)
	admin.GET("/:id/registrations", h.ListRegistrations)

	regs := r.ProtectedGroup("/registrations", middleware.RequireResource("event"))
	regs.POST("/:id/cancel", h.CancelRegistration)
	regs.POST("/:id/attend", h.MarkAttended)
}

// Create godoc
// @Summary Create a draft event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body eventapp.CreateEventRequest true "Event"
// @Success 201 {object} dto.Response{data=eventapp.EventResponse}
// @Failure 400 {object} dto.Response
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req eventapp.CreateEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	evt, err := h.eventService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, evt)
}

type eventListQuery struct {
	dto.ListRequest
	eventapp.EventListFilter
}

// List godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, open, closed)
// @Param upcoming query bool false "Only events that have not started"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]eventapp.EventResponse}
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var query eventListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.eventService.List(c.Request.Context(), query.EventListFilter, listFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.Response{data=eventapp.EventResponse}
// @Failure 404 {object} dto.Response
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	evt, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// GetBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.Response{data=eventapp.EventResponse}
// @Failure 404 {object} dto.Response
// @Router /events/slug/{slug} [get]
func (h *EventHandler) GetBySlug(c *gin.Context) {
	evt, err := h.eventService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Update godoc
// @Summary Update an event
// @Description Form fields are replaced wholesale by the submitted list.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body eventapp.CreateEventRequest true "Event"
// @Success 200 {object} dto.Response{data=eventapp.EventResponse}
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req eventapp.UpdateEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	evt, err := h.eventService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Open godoc
// @Summary Open an event for registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.Response{data=eventapp.EventResponse}
// @Failure 400 {object} dto.Response
// @Router /events/{id}/open [post]
func (h *EventHandler) Open(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	evt, err := h.eventService.Open(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Close godoc
// @Summary Close an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.Response{data=eventapp.EventResponse}
// @Router /events/{id}/close [post]
func (h *EventHandler) Close(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	evt, err := h.eventService.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Register godoc
// @Summary Register for an open event
// @Description Registration is first come first served while quota remains.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body eventapp.RegisterRequest true "Registration"
// @Success 201 {object} dto.Response{data=eventapp.RegistrationResponse}
// @Failure 400 {object} dto.Response
// @Router /events/{id}/register [post]
func (h *EventHandler) Register(c *gin.Context) {
	eventID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req eventapp.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), eventID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reg)
}

type registrationListQuery struct {
	dto.ListRequest
	eventapp.RegistrationListFilter
}

// ListRegistrations godoc
// @Summary List registrations of an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param status query string false "Filter by status" Enums(registered, cancelled, attended)
// @Success 200 {object} dto.Response{data=[]eventapp.RegistrationResponse}
// @Router /events/{id}/registrations [get]
func (h *EventHandler) ListRegistrations(c *gin.Context) {
	eventID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query registrationListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	regs, err := h.registrationService.ListByEvent(c.Request.Context(), eventID,
		query.RegistrationListFilter, listFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, regs)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204
// @Router /registrations/{id}/cancel [post]
func (h *EventHandler) CancelRegistration(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.registrationService.Cancel(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAttended godoc
// @Summary Mark a registration as attended
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204
// @Router /registrations/{id}/attend [post]
func (h *EventHandler) MarkAttended(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.registrationService.MarkAttended(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
