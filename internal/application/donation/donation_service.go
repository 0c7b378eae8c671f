package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/shared"
)

// SnapGateway abstracts the Midtrans Snap API so the service can be
// tested without the real gateway.
type SnapGateway interface {
	// CreateTransaction creates a Snap transaction and returns its token
	CreateTransaction(ctx context.Context, don *donation.Donation) (string, error)
	// VerifySignature checks a webhook notification's signature key
	VerifySignature(n PaymentNotification) bool
}

// DonationService handles donations and gateway notifications
type DonationService struct {
	programRepo  donation.ProgramRepository
	donationRepo donation.DonationRepository
	gateway      SnapGateway
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewDonationService creates a new donation service
func NewDonationService(
	programRepo donation.ProgramRepository,
	donationRepo donation.DonationRepository,
	gateway SnapGateway,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *DonationService {
	return &DonationService{
		programRepo:  programRepo,
		donationRepo: donationRepo,
		gateway:      gateway,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create records a pending donation. For Midtrans donations a Snap
// transaction is created and its token returned to the caller.
func (s *DonationService) Create(ctx context.Context, programID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error) {
	program, err := s.programRepo.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	var alumniID *uuid.UUID
	if req.AlumniID != "" {
		parsed, err := uuid.Parse(req.AlumniID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ALUMNI", "Invalid alumni ID")
		}
		alumniID = &parsed
	}

	don, err := donation.NewDonation(program, alumniID, req.DonorName, req.DonorEmail,
		req.Amount, donation.PaymentMethod(req.Method), req.Message, req.Anonymous)
	if err != nil {
		return nil, err
	}

	if don.Method == donation.PaymentMethodMidtrans {
		if s.gateway == nil {
			return nil, shared.NewDomainError("GATEWAY_UNAVAILABLE", "Online payment is not configured")
		}
		token, err := s.gateway.CreateTransaction(ctx, don)
		if err != nil {
			s.logger.Error("Failed to create Snap transaction",
				zap.String("order_id", don.OrderID), zap.Error(err))
			return nil, shared.NewDomainError("GATEWAY_ERROR", "Failed to initiate online payment")
		}
		if err := don.AttachSnapToken(token); err != nil {
			return nil, err
		}
	}

	if err := s.donationRepo.Save(ctx, don); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, don)

	s.logger.Info("Donation created",
		zap.String("donation_id", don.ID.String()),
		zap.String("order_id", don.OrderID),
		zap.String("method", string(don.Method)))

	resp := ToDonationResponse(don)
	return &resp, nil
}

// GetByID retrieves a donation
func (s *DonationService) GetByID(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	don, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDonationResponse(don)
	return &resp, nil
}

// ListByProgram retrieves donations for a program
func (s *DonationService) ListByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) (*shared.Paginated[DonationResponse], error) {
	page, err := s.donationRepo.FindByProgram(ctx, programID, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(page, filter), nil
}

// ListByAlumni retrieves an alumni's donation history
func (s *DonationService) ListByAlumni(ctx context.Context, alumniID uuid.UUID, filter shared.Filter) (*shared.Paginated[DonationResponse], error) {
	page, err := s.donationRepo.FindByAlumni(ctx, alumniID, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(page, filter), nil
}

// HandleNotification processes a Midtrans webhook call. Retries for an
// already settled donation are acknowledged without changing anything.
func (s *DonationService) HandleNotification(ctx context.Context, n PaymentNotification) error {
	if s.gateway != nil && !s.gateway.VerifySignature(n) {
		s.logger.Warn("Webhook signature mismatch", zap.String("order_id", n.OrderID))
		return shared.NewDomainError("INVALID_SIGNATURE", "Notification signature is invalid")
	}

	don, err := s.donationRepo.FindByOrderID(ctx, n.OrderID)
	if err != nil {
		return err
	}

	switch n.TransactionStatus {
	case "capture", "settlement":
		if n.FraudStatus != "" && n.FraudStatus != "accept" {
			s.logger.Warn("Payment flagged by fraud check",
				zap.String("order_id", n.OrderID), zap.String("fraud_status", n.FraudStatus))
			return nil
		}
		if err := don.MarkPaid(time.Now()); err != nil {
			if de, ok := err.(*shared.DomainError); ok && de.Code == "DONATION_ALREADY_PAID" {
				return nil
			}
			return err
		}
	case "expire":
		if err := don.MarkExpired(); err != nil {
			return nil
		}
	case "deny", "cancel":
		if err := don.Cancel(); err != nil {
			return nil
		}
	case "pending":
		return nil
	default:
		s.logger.Warn("Unhandled transaction status",
			zap.String("order_id", n.OrderID), zap.String("status", n.TransactionStatus))
		return nil
	}

	if err := s.donationRepo.Save(ctx, don); err != nil {
		return err
	}
	s.publishEvents(ctx, don)

	s.logger.Info("Donation status updated from notification",
		zap.String("order_id", n.OrderID),
		zap.String("status", string(don.Status)))
	return nil
}

// ConfirmTransfer settles a manual bank transfer donation
func (s *DonationService) ConfirmTransfer(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	don, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if don.Method != donation.PaymentMethodTransfer {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Only transfer donations are confirmed manually")
	}
	if err := don.MarkPaid(time.Now()); err != nil {
		return nil, err
	}
	if err := s.donationRepo.Save(ctx, don); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, don)

	s.logger.Info("Transfer donation confirmed", zap.String("donation_id", id.String()))

	resp := ToDonationResponse(don)
	return &resp, nil
}

// ProgramSummary returns the aggregate report for one program
func (s *DonationService) ProgramSummary(ctx context.Context, programID uuid.UUID) (*donation.ProgramSummary, error) {
	if _, err := s.programRepo.FindByID(ctx, programID); err != nil {
		return nil, err
	}
	return s.donationRepo.SummarizeProgram(ctx, programID)
}

// MonthlyReport returns paid donation totals grouped by month
func (s *DonationService) MonthlyReport(ctx context.Context, from, to time.Time) ([]MonthlyReportResponse, error) {
	totals, err := s.donationRepo.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]MonthlyReportResponse, len(totals))
	for i, t := range totals {
		responses[i] = MonthlyReportResponse{Month: t.Month, Total: t.Total, Count: t.Count}
	}
	return responses, nil
}

func (s *DonationService) publishEvents(ctx context.Context, don *donation.Donation) {
	if s.eventBus == nil {
		return
	}
	// Event delivery is best effort, failures do not roll back the write.
	_ = s.eventBus.Publish(ctx, don.GetDomainEvents()...)
	don.ClearDomainEvents()
}

func mapPage(page *shared.Paginated[donation.Donation], filter shared.Filter) *shared.Paginated[DonationResponse] {
	responses := make([]DonationResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToDonationResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, filter.Page, filter.PageSize)
}
