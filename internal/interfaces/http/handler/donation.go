package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	donationapp "github.com/ikada/backend/internal/application/donation"
	"github.com/ikada/backend/internal/infrastructure/cache"
	"github.com/ikada/backend/internal/infrastructure/logger"
	"github.com/ikada/backend/internal/infrastructure/telemetry"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"
)

// webhookDedupTTL keeps processed notification keys around long enough
// to absorb Midtrans retry storms.
const webhookDedupTTL = 24 * time.Hour

// DonationHandler handles donation and payment webhook endpoints
type DonationHandler struct {
	BaseHandler
	donationService *donationapp.DonationService
	idempotency     cache.IdempotencyStore
	metrics         *telemetry.PortalMetrics
}

func NewDonationHandler(donationService *donationapp.DonationService, idempotency cache.IdempotencyStore, metrics *telemetry.PortalMetrics) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		idempotency:     idempotency,
		metrics:         metrics,
	}
}

// RegisterRoutes registers donation routes. Donating and the payment
// webhook are public, administration requires the donation resource.
func (h *DonationHandler) RegisterRoutes(r *router.Router) {
	public := r.PublicGroup("/programs")
	public.POST("/:id/donations", h.Create)

	webhook := r.PublicGroup("/payments")
	webhook.POST("/midtrans/notification", h.MidtransNotification)

	admin := r.ProtectedGroup("/donations", middleware.RequireResource("donation"))
	admin.GET("/:id", h.GetByID)
	admin.POST("/:id/confirm", h.ConfirmTransfer)
	admin.GET("/reports/monthly", h.MonthlyReport)

	programAdmin := r.ProtectedGroup("/programs", middleware.RequireResource("donation"))
	programAdmin.GET("/:id/donations", h.ListByProgram)
	programAdmin.GET("/:id/summary", h.ProgramSummary)

	alumni := r.ProtectedGroup("/alumni", middleware.RequireResource("donation"))
	alumni.GET("/:id/donations", h.ListByAlumni)
}

// Create godoc
// @Summary Donate to a program
// @Description Midtrans donations return a Snap token for the payment
// @Description popup, transfer donations stay pending until an admin
// @Description confirms the funds arrived.
// @Tags donations
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param request body donationapp.CreateDonationRequest true "Donation"
// @Success 201 {object} dto.Response{data=donationapp.DonationResponse}
// @Failure 400 {object} dto.Response
// @Router /programs/{id}/donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	programID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req donationapp.CreateDonationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	don, err := h.donationService.Create(c.Request.Context(), programID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDonationCreated(c.Request.Context(), programID.String(), don.Method)
	}
	h.Created(c, don)
}

// MidtransNotification godoc
// @Summary Midtrans payment notification webhook
// @Description Notifications are deduplicated on order ID and
// @Description transaction status, retries are acknowledged without
// @Description reprocessing.
// @Tags donations
// @Accept json
// @Produce json
// @Param request body donationapp.PaymentNotification true "Notification"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Router /payments/midtrans/notification [post]
func (h *DonationHandler) MidtransNotification(c *gin.Context) {
	var n donationapp.PaymentNotification
	if !h.BindJSON(c, &n) {
		return
	}

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	if h.metrics != nil {
		h.metrics.RecordPaymentWebhook(ctx, n.TransactionStatus)
	}

	dedupKey := n.OrderID + ":" + n.TransactionStatus
	if h.idempotency != nil {
		first, err := h.idempotency.MarkProcessed(ctx, dedupKey, webhookDedupTTL)
		if err != nil {
			// Deduplication is best effort, processing is idempotent
			// at the aggregate level anyway.
			log.Warn("Webhook dedup check failed", zap.Error(err))
		} else if !first {
			log.Info("Duplicate payment notification acknowledged",
				zap.String("order_id", n.OrderID),
				zap.String("transaction_status", n.TransactionStatus))
			h.Success(c, gin.H{"status": "ok"})
			return
		}
	}

	if err := h.donationService.HandleNotification(ctx, n); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"status": "ok"})
}

// GetByID godoc
// @Summary Get a donation by ID
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} dto.Response{data=donationapp.DonationResponse}
// @Failure 404 {object} dto.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	don, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, don)
}

// ListByProgram godoc
// @Summary List donations of a program
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]donationapp.DonationResponse}
// @Router /programs/{id}/donations [get]
func (h *DonationHandler) ListByProgram(c *gin.Context) {
	programID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.donationService.ListByProgram(c.Request.Context(), programID, listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByAlumni godoc
// @Summary List donations made by an alumni
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alumni ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.Response{data=[]donationapp.DonationResponse}
// @Router /alumni/{id}/donations [get]
func (h *DonationHandler) ListByAlumni(c *gin.Context) {
	alumniID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.donationService.ListByAlumni(c.Request.Context(), alumniID, listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ConfirmTransfer godoc
// @Summary Confirm a bank transfer donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} dto.Response{data=donationapp.DonationResponse}
// @Failure 400 {object} dto.Response
// @Router /donations/{id}/confirm [post]
func (h *DonationHandler) ConfirmTransfer(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	don, err := h.donationService.ConfirmTransfer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, don)
}

// ProgramSummary godoc
// @Summary Get donation totals for a program
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} dto.Response
// @Router /programs/{id}/summary [get]
func (h *DonationHandler) ProgramSummary(c *gin.Context) {
	programID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.donationService.ProgramSummary(c.Request.Context(), programID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// MonthlyReport godoc
// @Summary Monthly donation totals
// @Description Months are given as YYYY-MM. The range defaults to the
// @Description last twelve months.
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param from query string false "First month (YYYY-MM)"
// @Param to query string false "Last month (YYYY-MM)"
// @Success 200 {object} dto.Response{data=[]donationapp.MonthlyReportResponse}
// @Router /donations/reports/monthly [get]
func (h *DonationHandler) MonthlyReport(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year()-1, now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid from month, expected YYYY-MM")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid to month, expected YYYY-MM")
			return
		}
		// Include the whole final month.
		to = parsed.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}

	report, err := h.donationService.MonthlyReport(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
