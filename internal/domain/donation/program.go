package donation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ikada/backend/internal/domain/shared"
)

// ProgramStatus represents the lifecycle state of a donation program.
type ProgramStatus string

const (
	ProgramStatusActive ProgramStatus = "active"
	ProgramStatusClosed ProgramStatus = "closed"
)

// Program is a fundraising campaign alumni can donate to.
type Program struct {
	shared.BaseAggregateRoot
	Title        string          `gorm:"not null" json:"title"`
	Slug         string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string          `gorm:"type:text" json:"description"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"target_amount"`
	BannerURL    string          `json:"banner_url"`
	Status       ProgramStatus   `gorm:"default:'active'" json:"status"`
	StartAt      *time.Time      `json:"start_at"`
	EndAt        *time.Time      `json:"end_at"`
}

func (Program) TableName() string {
	return "donation_programs"
}

// NewProgram creates an active donation program.
func NewProgram(title, description string, targetAmount decimal.Decimal) (*Program, error) {
	if err := validateProgramTitle(title); err != nil {
		return nil, err
	}
	if targetAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TARGET_AMOUNT", "Target amount cannot be negative")
	}

	program := &Program{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              shared.Slugify(title),
		Description:       description,
		TargetAmount:      targetAmount,
		Status:            ProgramStatusActive,
	}
	program.AddDomainEvent(NewProgramCreatedEvent(program))
	return program, nil
}

// Update changes the program's descriptive fields. The slug follows the title.
func (p *Program) Update(title, description string, targetAmount decimal.Decimal) error {
	if err := validateProgramTitle(title); err != nil {
		return err
	}
	if targetAmount.IsNegative() {
		return shared.NewDomainError("INVALID_TARGET_AMOUNT", "Target amount cannot be negative")
	}

	p.Title = title
	p.Slug = shared.Slugify(title)
	p.Description = description
	p.TargetAmount = targetAmount
	p.UpdatedAt = time.Now()
	return nil
}

// SetPeriod sets the optional campaign window.
func (p *Program) SetPeriod(startAt, endAt *time.Time) error {
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return shared.NewDomainError("INVALID_PERIOD", "Program end must be after start")
	}
	p.StartAt = startAt
	p.EndAt = endAt
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Program) SetBanner(url string) {
	p.BannerURL = url
	p.UpdatedAt = time.Now()
}

// Close stops the program from accepting new donations.
func (p *Program) Close() error {
	if p.Status == ProgramStatusClosed {
		return shared.NewDomainError("PROGRAM_ALREADY_CLOSED", "Donation program is already closed")
	}
	p.Status = ProgramStatusClosed
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Program) Reopen() {
	p.Status = ProgramStatusActive
	p.UpdatedAt = time.Now()
}

// AcceptsDonations reports whether a donation may be created at the given time.
func (p *Program) AcceptsDonations(now time.Time) bool {
	if p.Status != ProgramStatusActive {
		return false
	}
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	return true
}

func validateProgramTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_PROGRAM_TITLE", "Program title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_PROGRAM_TITLE", "Program title cannot exceed 200 characters")
	}
	if shared.Slugify(title) == "" {
		return shared.NewDomainError("INVALID_PROGRAM_TITLE", "Program title must contain letters or digits")
	}
	return nil
}
