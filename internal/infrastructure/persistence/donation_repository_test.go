package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/shared"
)

func setupDonationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&donation.Program{}, &donation.Donation{})
	require.NoError(t, err)

	return db
}

func createTestProgram(t *testing.T, repo *GormProgramRepository, title string) *donation.Program {
	program, err := donation.NewProgram(title, "", decimal.NewFromInt(100_000_000))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), program))
	return program
}

func createTestDonation(t *testing.T, repo *GormDonationRepository, program *donation.Program, amount int64, paidAt *time.Time) *donation.Donation {
	don, err := donation.NewDonation(
		program, nil, "Ahmad Fauzi", "fauzi@example.com",
		decimal.NewFromInt(amount), donation.PaymentMethodTransfer, "", false,
	)
	require.NoError(t, err)
	if paidAt != nil {
		require.NoError(t, don.MarkPaid(*paidAt))
	}
	require.NoError(t, repo.Save(context.Background(), don))
	return don
}

func TestGormDonationRepository_FindByOrderID(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")
	don := createTestDonation(t, donationRepo, program, 500_000, nil)

	found, err := donationRepo.FindByOrderID(ctx, don.OrderID)

	require.NoError(t, err)
	assert.Equal(t, don.ID, found.ID)

	_, err = donationRepo.FindByOrderID(ctx, "DON-unknown")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormDonationRepository_SummarizeProgram(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")
	other := createTestProgram(t, programRepo, "Beasiswa Santri")

	now := time.Now()
	createTestDonation(t, donationRepo, program, 500_000, &now)
	createTestDonation(t, donationRepo, program, 250_000, &now)
	createTestDonation(t, donationRepo, program, 1_000_000, nil)
	createTestDonation(t, donationRepo, other, 9_000_000, &now)

	summary, err := donationRepo.SummarizeProgram(ctx, program.ID)

	require.NoError(t, err)
	assert.Equal(t, program.ID, summary.ProgramID)
	assert.True(t, summary.TotalCollected.Equal(decimal.NewFromInt(750_000)),
		"expected 750000, got %s", summary.TotalCollected)
	assert.Equal(t, int64(2), summary.DonorCount)
	assert.Equal(t, int64(1), summary.PendingCount)
}

func TestGormDonationRepository_SummarizeProgram_Empty(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)

	program := createTestProgram(t, programRepo, "Renovasi Asrama")

	summary, err := donationRepo.SummarizeProgram(context.Background(), program.ID)

	require.NoError(t, err)
	assert.True(t, summary.TotalCollected.IsZero())
	assert.Equal(t, int64(0), summary.DonorCount)
	assert.Equal(t, int64(0), summary.PendingCount)
}

func TestGormDonationRepository_MonthlyTotals(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")

	jan := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	createTestDonation(t, donationRepo, program, 500_000, &jan)
	createTestDonation(t, donationRepo, program, 300_000, &jan)
	createTestDonation(t, donationRepo, program, 200_000, &feb)
	createTestDonation(t, donationRepo, program, 999_999, nil)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	totals, err := donationRepo.MonthlyTotals(ctx, from, to)

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "2026-01", totals[0].Month)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(800_000)))
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, "2026-02", totals[1].Month)
	assert.True(t, totals[1].Total.Equal(decimal.NewFromInt(200_000)))
	assert.Equal(t, int64(1), totals[1].Count)
}

func TestGormDonationRepository_FindByProgram_Pagination(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")
	for i := 0; i < 5; i++ {
		createTestDonation(t, donationRepo, program, 100_000, nil)
	}

	page, err := donationRepo.FindByProgram(ctx, program.ID, shared.Filter{Page: 1, PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalPages)
}

func TestGormDonationRepository_FindByProgram_StatusFilter(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")
	now := time.Now()
	paid := createTestDonation(t, donationRepo, program, 500_000, &now)
	createTestDonation(t, donationRepo, program, 250_000, nil)

	page, err := donationRepo.FindByProgram(ctx, program.ID, shared.Filter{
		Page: 1, PageSize: 10,
		Filters: map[string]interface{}{"status": string(donation.DonationStatusPaid)},
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, paid.ID, page.Items[0].ID)
}

func TestGormProgramRepository_HasDonations(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")

	has, err := programRepo.HasDonations(ctx, program.ID)
	require.NoError(t, err)
	assert.False(t, has)

	createTestDonation(t, donationRepo, program, 500_000, nil)

	has, err = programRepo.HasDonations(ctx, program.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGormProgramRepository_FindAll_StatusFilter(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	ctx := context.Background()

	active := createTestProgram(t, programRepo, "Renovasi Asrama")
	closed := createTestProgram(t, programRepo, "Beasiswa Santri")
	require.NoError(t, closed.Close())
	require.NoError(t, programRepo.Save(ctx, closed))

	page, err := programRepo.FindAll(ctx, shared.Filter{
		Page: 1, PageSize: 10,
		Filters: map[string]interface{}{"status": string(donation.ProgramStatusActive)},
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, active.ID, page.Items[0].ID)
}

func TestGormDonationRepository_FindStalePending(t *testing.T) {
	db := setupDonationTestDB(t)
	programRepo := NewGormProgramRepository(db)
	donationRepo := NewGormDonationRepository(db)
	ctx := context.Background()

	program := createTestProgram(t, programRepo, "Renovasi Asrama")

	makeDonation := func(method donation.PaymentMethod, age time.Duration) *donation.Donation {
		don, err := donation.NewDonation(
			program, nil, "Ahmad Fauzi", "fauzi@example.com",
			decimal.NewFromInt(100_000), method, "", false,
		)
		require.NoError(t, err)
		don.CreatedAt = time.Now().Add(-age)
		require.NoError(t, donationRepo.Save(ctx, don))
		return don
	}

	old := makeDonation(donation.PaymentMethodMidtrans, 2*time.Hour)
	older := makeDonation(donation.PaymentMethodMidtrans, 3*time.Hour)
	makeDonation(donation.PaymentMethodMidtrans, time.Minute)
	makeDonation(donation.PaymentMethodTransfer, 2*time.Hour)

	paid := makeDonation(donation.PaymentMethodMidtrans, 2*time.Hour)
	require.NoError(t, paid.MarkPaid(time.Now()))
	require.NoError(t, donationRepo.Save(ctx, paid))

	stale, err := donationRepo.FindStalePending(ctx, donation.PaymentMethodMidtrans, time.Now().Add(-time.Hour), 10)

	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, older.ID, stale[0].ID)
	assert.Equal(t, old.ID, stale[1].ID)

	capped, err := donationRepo.FindStalePending(ctx, donation.PaymentMethodMidtrans, time.Now().Add(-time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, older.ID, capped[0].ID)
}
