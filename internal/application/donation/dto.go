package donation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ikada/backend/internal/domain/donation"
)

// ProgramRequest represents the request to create or update a program
type ProgramRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	BannerURL    string          `json:"banner_url" binding:"omitempty,url"`
	StartAt      *time.Time      `json:"start_at"`
	EndAt        *time.Time      `json:"end_at"`
}

// ProgramListFilter represents query filters for listing programs
type ProgramListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=active closed"`
}

// ProgramResponse represents a program in API responses
type ProgramResponse struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description,omitempty"`
	TargetAmount   decimal.Decimal  `json:"target_amount"`
	BannerURL      string           `json:"banner_url,omitempty"`
	Status         string           `json:"status"`
	StartAt        *time.Time       `json:"start_at,omitempty"`
	EndAt          *time.Time       `json:"end_at,omitempty"`
	TotalCollected *decimal.Decimal `json:"total_collected,omitempty"`
	DonorCount     *int64           `json:"donor_count,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToProgramResponse converts a program aggregate to a response DTO
func ToProgramResponse(program *donation.Program) ProgramResponse {
	return ProgramResponse{
		ID:           program.ID,
		Title:        program.Title,
		Slug:         program.Slug,
		Description:  program.Description,
		TargetAmount: program.TargetAmount,
		BannerURL:    program.BannerURL,
		Status:       string(program.Status),
		StartAt:      program.StartAt,
		EndAt:        program.EndAt,
		CreatedAt:    program.CreatedAt,
		UpdatedAt:    program.UpdatedAt,
	}
}

// CreateDonationRequest represents the public request to donate.
// AlumniID is set for logged-in alumni.
type CreateDonationRequest struct {
	AlumniID   string          `json:"alumni_id" binding:"omitempty,uuid"`
	DonorName  string          `json:"donor_name" binding:"required,max=100"`
	DonorEmail string          `json:"donor_email" binding:"omitempty,email"`
	DonorPhone string          `json:"donor_phone" binding:"max=20"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=transfer midtrans"`
	Message    string          `json:"message" binding:"max=500"`
	Anonymous  bool            `json:"anonymous"`
}

// DonationResponse represents a donation in API responses. DonorName
// already honors the anonymity flag.
type DonationResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProgramID uuid.UUID       `json:"program_id"`
	DonorName string          `json:"donor_name"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Message   string          `json:"message,omitempty"`
	OrderID   string          `json:"order_id"`
	SnapToken string          `json:"snap_token,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToDonationResponse converts a donation to a response DTO
func ToDonationResponse(don *donation.Donation) DonationResponse {
	return DonationResponse{
		ID:        don.ID,
		ProgramID: don.ProgramID,
		DonorName: don.DisplayName(),
		Amount:    don.Amount,
		Method:    string(don.Method),
		Status:    string(don.Status),
		Message:   don.Message,
		OrderID:   don.OrderID,
		SnapToken: don.SnapToken,
		PaidAt:    don.PaidAt,
		CreatedAt: don.CreatedAt,
	}
}

// PaymentNotification is the Midtrans webhook payload subset we act on
type PaymentNotification struct {
	TransactionStatus string `json:"transaction_status" binding:"required"`
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// MonthlyReportResponse is one point of the monthly donation series
type MonthlyReportResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}
