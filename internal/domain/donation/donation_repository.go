package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ikada/backend/internal/domain/shared"
)

// ProgramSummary aggregates paid donations for one program.
type ProgramSummary struct {
	ProgramID      uuid.UUID       `json:"program_id"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	DonorCount     int64           `json:"donor_count"`
	PendingCount   int64           `json:"pending_count"`
}

// MonthlyTotal is one point in the donation time series.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type ProgramRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)
	FindBySlug(ctx context.Context, slug string) (*Program, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Program], error)
	Save(ctx context.Context, program *Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasDonations(ctx context.Context, programID uuid.UUID) (bool, error)
}

type DonationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	FindByOrderID(ctx context.Context, orderID string) (*Donation, error)
	FindByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) (*shared.Paginated[Donation], error)
	FindByAlumni(ctx context.Context, alumniID uuid.UUID, filter shared.Filter) (*shared.Paginated[Donation], error)
	Save(ctx context.Context, donation *Donation) error

	// SummarizeProgram aggregates paid amounts and donor counts in SQL.
	SummarizeProgram(ctx context.Context, programID uuid.UUID) (*ProgramSummary, error)
	// MonthlyTotals returns paid totals grouped by month between from and to.
	MonthlyTotals(ctx context.Context, from, to time.Time) ([]MonthlyTotal, error)
	// FindStalePending returns pending donations for the given payment method
	// created before the cutoff, oldest first, capped at limit.
	FindStalePending(ctx context.Context, method PaymentMethod, olderThan time.Time, limit int) ([]Donation, error)
}
