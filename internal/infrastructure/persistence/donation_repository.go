package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormDonationRepository implements donation.DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var don donation.Donation
	if err := r.db.WithContext(ctx).First(&don, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &don, nil
}

// FindByOrderID finds a donation by its payment order ID
func (r *GormDonationRepository) FindByOrderID(ctx context.Context, orderID string) (*donation.Donation, error) {
	var don donation.Donation
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&don).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &don, nil
}

// FindByProgram finds donations for a program with a total count
func (r *GormDonationRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) (*shared.Paginated[donation.Donation], error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&donation.Donation{}).Where("program_id = ?", programID),
		filter,
	)
	return r.paginate(query, filter)
}

// FindByAlumni finds an alumni's donations with a total count
func (r *GormDonationRepository) FindByAlumni(ctx context.Context, alumniID uuid.UUID, filter shared.Filter) (*shared.Paginated[donation.Donation], error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&donation.Donation{}).Where("alumni_id = ?", alumniID),
		filter,
	)
	return r.paginate(query, filter)
}

// Save creates or updates a donation
func (r *GormDonationRepository) Save(ctx context.Context, don *donation.Donation) error {
	return r.db.WithContext(ctx).Save(don).Error
}

// SummarizeProgram aggregates paid amounts and donor counts in SQL
func (r *GormDonationRepository) SummarizeProgram(ctx context.Context, programID uuid.UUID) (*donation.ProgramSummary, error) {
	var row struct {
		TotalCollected decimal.Decimal
		DonorCount     int64
		PendingCount   int64
	}

	if err := r.db.WithContext(ctx).
		Model(&donation.Donation{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS total_collected, "+
				"COUNT(CASE WHEN status = ? THEN 1 END) AS donor_count, "+
				"COUNT(CASE WHEN status = ? THEN 1 END) AS pending_count",
			donation.DonationStatusPaid,
			donation.DonationStatusPaid,
			donation.DonationStatusPending,
		).
		Where("program_id = ?", programID).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	return &donation.ProgramSummary{
		ProgramID:      programID,
		TotalCollected: row.TotalCollected,
		DonorCount:     row.DonorCount,
		PendingCount:   row.PendingCount,
	}, nil
}

// MonthlyTotals returns paid totals grouped by month between from and to
func (r *GormDonationRepository) MonthlyTotals(ctx context.Context, from, to time.Time) ([]donation.MonthlyTotal, error) {
	monthExpr := "to_char(paid_at, 'YYYY-MM')"
	if r.db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', paid_at)"
	}

	var rows []struct {
		Month string
		Total decimal.Decimal
		Count int64
	}

	if err := r.db.WithContext(ctx).
		Model(&donation.Donation{}).
		Select(monthExpr+" AS month, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", donation.DonationStatusPaid, from, to).
		Group(monthExpr).
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]donation.MonthlyTotal, len(rows))
	for i, row := range rows {
		totals[i] = donation.MonthlyTotal{
			Month: row.Month,
			Total: row.Total,
			Count: row.Count,
		}
	}
	return totals, nil
}

// FindStalePending returns pending donations for a payment method created
// before the cutoff, oldest first
func (r *GormDonationRepository) FindStalePending(ctx context.Context, method donation.PaymentMethod, olderThan time.Time, limit int) ([]donation.Donation, error) {
	var donations []donation.Donation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND method = ? AND created_at < ?", donation.DonationStatusPending, method, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// paginate counts the filtered query and returns one page of results
func (r *GormDonationRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[donation.Donation], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var donations []donation.Donation
	page := applyPagination(query, filter)
	if err := page.Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(donations, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormDonationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		}
	}
	return query
}

// Ensure GormDonationRepository implements DonationRepository
var _ donation.DonationRepository = (*GormDonationRepository)(nil)
