package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaapp "github.com/ikada/backend/internal/application/media"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// MediaHandler handles presigned upload and download endpoints
type MediaHandler struct {
	BaseHandler
	mediaService *mediaapp.Service
}

func NewMediaHandler(mediaService *mediaapp.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RegisterRoutes registers media routes. All media operations require
// a logged-in user, the storage key scopes what they can touch.
func (h *MediaHandler) RegisterRoutes(r *router.Router) {
	media := r.ProtectedGroup("/media")
	media.POST("/uploads", h.InitiateUpload)
	media.GET("/download-url", h.GetDownloadURL)
	media.DELETE("", h.Delete)
}

// InitiateUpload godoc
// @Summary Request a presigned upload URL
// @Description The client PUTs the file to the returned URL, then
// @Description attaches the storage key to the target aggregate.
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body mediaapp.InitiateUploadRequest true "Upload"
// @Success 200 {object} dto.Response{data=mediaapp.InitiateUploadResponse}
// @Failure 400 {object} dto.Response
// @Router /media/uploads [post]
func (h *MediaHandler) InitiateUpload(c *gin.Context) {
	var req mediaapp.InitiateUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.mediaService.InitiateUpload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetDownloadURL godoc
// @Summary Request a presigned download URL
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param key query string true "Storage key"
// @Success 200 {object} dto.Response{data=mediaapp.DownloadURLResponse}
// @Failure 404 {object} dto.Response
// @Router /media/download-url [get]
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Missing key parameter")
		return
	}

	resp, err := h.mediaService.GetDownloadURL(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @Summary Delete a stored object
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param key query string true "Storage key"
// @Success 204
// @Router /media [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Missing key parameter")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
