package donation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ikada/backend/internal/domain/shared"
)

// PaymentMethod identifies how a donation is paid.
type PaymentMethod string

const (
	// PaymentMethodTransfer is a manual bank transfer confirmed by an admin.
	PaymentMethodTransfer PaymentMethod = "transfer"
	// PaymentMethodMidtrans is an online payment through the Midtrans gateway.
	PaymentMethodMidtrans PaymentMethod = "midtrans"
)

// DonationStatus tracks the payment lifecycle of a donation.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusPaid      DonationStatus = "paid"
	DonationStatusExpired   DonationStatus = "expired"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// Donation is a single pledge against a program.
type Donation struct {
	shared.BaseAggregateRoot
	ProgramID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"program_id"`
	Program    *Program       `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	AlumniID   *uuid.UUID     `gorm:"type:uuid;index" json:"alumni_id,omitempty"`
	DonorName  string         `gorm:"not null" json:"donor_name"`
	DonorEmail string         `json:"donor_email"`
	Anonymous  bool           `gorm:"default:false" json:"anonymous"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method     PaymentMethod  `gorm:"not null" json:"method"`
	Status     DonationStatus `gorm:"default:'pending';index" json:"status"`
	Message    string         `gorm:"type:text" json:"message"`
	PaidAt     *time.Time     `json:"paid_at,omitempty"`

	// Midtrans fields, empty for manual transfers.
	OrderID   string `gorm:"uniqueIndex" json:"order_id"`
	SnapToken string `json:"snap_token,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// NewDonation creates a pending donation against a program.
func NewDonation(program *Program, alumniID *uuid.UUID, donorName, donorEmail string, amount decimal.Decimal, method PaymentMethod, message string, anonymous bool) (*Donation, error) {
	if program == nil {
		return nil, shared.NewDomainError("PROGRAM_REQUIRED", "Donation requires a program")
	}
	if !program.AcceptsDonations(time.Now()) {
		return nil, shared.NewDomainError("PROGRAM_NOT_ACCEPTING", "Donation program is not accepting donations")
	}
	donorName = strings.TrimSpace(donorName)
	if donorName == "" {
		return nil, shared.NewDomainError("INVALID_DONOR_NAME", "Donor name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_DONATION_AMOUNT", "Donation amount must be positive")
	}
	if method != PaymentMethodTransfer && method != PaymentMethodMidtrans {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+string(method))
	}

	don := &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProgramID:         program.ID,
		AlumniID:          alumniID,
		DonorName:         donorName,
		DonorEmail:        strings.ToLower(strings.TrimSpace(donorEmail)),
		Anonymous:         anonymous,
		Amount:            amount,
		Method:            method,
		Status:            DonationStatusPending,
		Message:           message,
	}
	don.OrderID = "DON-" + don.ID.String()
	don.AddDomainEvent(NewDonationCreatedEvent(don))
	return don, nil
}

// AttachSnapToken records the Midtrans Snap token issued for this donation.
func (d *Donation) AttachSnapToken(token string) error {
	if d.Method != PaymentMethodMidtrans {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Snap tokens apply to Midtrans donations only")
	}
	d.SnapToken = token
	d.UpdatedAt = time.Now()
	return nil
}

// MarkPaid settles the donation. Settling twice is a no-op error so that
// webhook retries do not double count.
func (d *Donation) MarkPaid(at time.Time) error {
	if d.Status == DonationStatusPaid {
		return shared.NewDomainError("DONATION_ALREADY_PAID", "Donation is already paid")
	}
	if d.Status == DonationStatusCancelled {
		return shared.NewDomainError("DONATION_CANCELLED", "Cancelled donation cannot be paid")
	}
	d.Status = DonationStatusPaid
	d.PaidAt = &at
	d.UpdatedAt = time.Now()
	d.AddDomainEvent(NewDonationPaidEvent(d))
	return nil
}

// MarkExpired is applied when the gateway reports the payment window lapsed.
func (d *Donation) MarkExpired() error {
	if d.Status != DonationStatusPending {
		return shared.NewDomainError("DONATION_NOT_PENDING", "Only pending donations can expire")
	}
	d.Status = DonationStatusExpired
	d.UpdatedAt = time.Now()
	return nil
}

// Cancel voids a pending donation.
func (d *Donation) Cancel() error {
	if d.Status != DonationStatusPending {
		return shared.NewDomainError("DONATION_NOT_PENDING", "Only pending donations can be cancelled")
	}
	d.Status = DonationStatusCancelled
	d.UpdatedAt = time.Now()
	return nil
}

// DisplayName resolves the donor name honoring the anonymity flag.
func (d *Donation) DisplayName() string {
	if d.Anonymous {
		return "Hamba Allah"
	}
	return d.DonorName
}
