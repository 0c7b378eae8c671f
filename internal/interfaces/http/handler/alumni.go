package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	importapp "github.com/ikada/backend/internal/application/import"
	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// AlumniHandler handles alumni directory and registration endpoints
type AlumniHandler struct {
	BaseHandler
	alumniService *membershipapp.AlumniService
	importService *importapp.AlumniImportService
}

func NewAlumniHandler(alumniService *membershipapp.AlumniService, importService *importapp.AlumniImportService) *AlumniHandler {
	return &AlumniHandler{alumniService: alumniService, importService: importService}
}

// RegisterRoutes registers alumni routes. Registration is public so
// alumni can sign up without an account, everything else is admin.
func (h *AlumniHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/alumni")
	public.POST("/register", h.Register)

	alumni := r.ProtectedGroup("/alumni", middleware.RequireResource("alumni"))
	alumni.GET("", h.List)
	alumni.GET("/:id", h.GetByID)
	alumni.PUT("/:id", h.UpdateProfile)
	alumni.DELETE("/:id", h.Delete)

	actions := r.ProtectedGroup("/alumni")
	actions.POST("/:id/verify", middleware.RequirePermission("alumni:verify"), h.Verify)
	actions.POST("/:id/reject", middleware.RequirePermission("alumni:verify"), h.Reject)
	actions.POST("/import", middleware.RequirePermission("alumni:import"), h.Import)
	actions.POST("/import/validate", middleware.RequirePermission("alumni:import"), h.ValidateImport)
}

// Register godoc
// @Summary Register as an alumni member
// @Description The registration enters the directory in pending status until verified by an admin.
// @Tags alumni
// @Accept json
// @Produce json
// @Param request body membershipapp.RegisterAlumniRequest true "Registration"
// @Success 201 {object} dto.Response{data=membershipapp.AlumniResponse}
// @Failure 400 {object} dto.Response
// @Router /alumni/register [post]
func (h *AlumniHandler) Register(c *gin.Context) {
	var req membershipapp.RegisterAlumniRequest
	if !h.BindJSON(c, &req) {
		return
	}

	alumni, err := h.alumniService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, alumni)
}

// List godoc
// @Summary List alumni
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or email"
// @Param status query string false "Filter by status" Enums(pending, verified, rejected)
// @Param syubiyahId query string false "Filter by syubiyah"
// @Param graduationYear query int false "Filter by graduation year"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]membershipapp.AlumniResponse}
// @Router /alumni [get]
func (h *AlumniHandler) List(c *gin.Context) {
	var filter membershipapp.AlumniListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	alumni, total, err := h.alumniService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, alumni, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get an alumni by ID
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Success 200 {object} dto.Response{data=membershipapp.AlumniResponse}
// @Failure 404 {object} dto.Response
// @Router /alumni/{id} [get]
func (h *AlumniHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	alumni, err := h.alumniService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alumni)
}

// UpdateProfile godoc
// @Summary Update an alumni profile
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Param request body membershipapp.UpdateAlumniRequest true "Profile"
// @Success 200 {object} dto.Response{data=membershipapp.AlumniResponse}
// @Router /alumni/{id} [put]
func (h *AlumniHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membershipapp.UpdateAlumniRequest
	if !h.BindJSON(c, &req) {
		return
	}

	alumni, err := h.alumniService.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alumni)
}

// Verify godoc
// @Summary Verify a pending alumni registration
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Success 200 {object} dto.Response{data=membershipapp.AlumniResponse}
// @Failure 400 {object} dto.Response
// @Router /alumni/{id}/verify [post]
func (h *AlumniHandler) Verify(c *gin.Context) {
	verifierID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	alumni, err := h.alumniService.Verify(c.Request.Context(), id, verifierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alumni)
}

// Reject godoc
// @Summary Reject a pending alumni registration
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Param request body membershipapp.RejectAlumniRequest true "Rejection reason"
// @Success 200 {object} dto.Response{data=membershipapp.AlumniResponse}
// @Router /alumni/{id}/reject [post]
func (h *AlumniHandler) Reject(c *gin.Context) {
	verifierID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membershipapp.RejectAlumniRequest
	if !h.BindJSON(c, &req) {
		return
	}

	alumni, err := h.alumniService.Reject(c.Request.Context(), id, verifierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alumni)
}

// Delete godoc
// @Summary Delete an alumni record
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Success 204
// @Router /alumni/{id} [delete]
func (h *AlumniHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.alumniService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import godoc
// @Summary Import alumni from a CSV file
// @Description Imported rows are created already verified. Rows with errors are skipped and reported.
// @Tags alumni
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.Response{data=importapp.ImportResult}
// @Failure 400 {object} dto.Response
// @Router /alumni/import [post]
func (h *AlumniHandler) Import(c *gin.Context) {
	importerID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	data, ok := h.readImportFile(c)
	if !ok {
		return
	}

	result, err := h.importService.Import(c.Request.Context(), importerID, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ValidateImport godoc
// @Summary Validate an alumni CSV file without importing
// @Tags alumni
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.Response{data=importapp.ImportResult}
// @Failure 400 {object} dto.Response
// @Router /alumni/import/validate [post]
func (h *AlumniHandler) ValidateImport(c *gin.Context) {
	data, ok := h.readImportFile(c)
	if !ok {
		return
	}

	result, err := h.importService.Validate(c.Request.Context(), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *AlumniHandler) readImportFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Missing file upload")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Cannot read uploaded file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Cannot read uploaded file")
		return nil, false
	}
	return data, true
}
