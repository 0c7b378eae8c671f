package donation

import "github.com/ikada/backend/internal/domain/shared"

type ProgramCreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func NewProgramCreatedEvent(p *Program) *ProgramCreatedEvent {
	return &ProgramCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("donation.program.created", "Program", p.ID),
		Title:           p.Title,
		Slug:            p.Slug,
	}
}

type DonationCreatedEvent struct {
	shared.BaseDomainEvent
	ProgramID string `json:"program_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

func NewDonationCreatedEvent(d *Donation) *DonationCreatedEvent {
	return &DonationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("donation.created", "Donation", d.ID),
		ProgramID:       d.ProgramID.String(),
		Amount:          d.Amount.String(),
		Method:          string(d.Method),
	}
}

type DonationPaidEvent struct {
	shared.BaseDomainEvent
	ProgramID string `json:"program_id"`
	Amount    string `json:"amount"`
	OrderID   string `json:"order_id"`
}

func NewDonationPaidEvent(d *Donation) *DonationPaidEvent {
	return &DonationPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("donation.paid", "Donation", d.ID),
		ProgramID:       d.ProgramID.String(),
		Amount:          d.Amount.String(),
		OrderID:         d.OrderID,
	}
}
