package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/ikada/backend/internal/application/identity"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// RoleHandler handles role management endpoints
type RoleHandler struct {
	BaseHandler
	roleService *identityapp.RoleService
}

func NewRoleHandler(roleService *identityapp.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// RegisterRoutes registers role management routes
func (h *RoleHandler) RegisterRoutes(r *router.Router) {
	roles := r.ProtectedGroup("/roles", middleware.RequireResource("role"))
	roles.POST("", h.Create)
	roles.GET("", h.List)
	roles.GET("/:id", h.GetByID)
	roles.PUT("/:id", h.Update)
	roles.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body identityapp.CreateRoleRequest true "Role"
// @Success 201 {object} dto.Response{data=identityapp.RoleResponse}
// @Failure 400 {object} dto.Response
// @Router /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req identityapp.CreateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// List godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]identityapp.RoleResponse}
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}

	roles, err := h.roleService.List(c.Request.Context(), listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// GetByID godoc
// @Summary Get a role by ID
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 200 {object} dto.Response{data=identityapp.RoleResponse}
// @Failure 404 {object} dto.Response
// @Router /roles/{id} [get]
func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Update godoc
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Param request body identityapp.UpdateRoleRequest true "Role"
// @Success 200 {object} dto.Response{data=identityapp.RoleResponse}
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req identityapp.UpdateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete godoc
// @Summary Delete a role
// @Description System roles and roles still assigned to users cannot be deleted.
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 204
// @Failure 400 {object} dto.Response
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
