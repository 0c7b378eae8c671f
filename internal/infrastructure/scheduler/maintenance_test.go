package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/infrastructure/persistence"
)

func setupMaintenanceTest(t *testing.T) (*MaintenanceWorker, *persistence.GormDonationRepository, *persistence.GormEventRepository, *persistence.GormProgramRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&donation.Program{}, &donation.Donation{},
		&event.Event{}, &event.FormField{}, &event.Registration{},
	)
	require.NoError(t, err)

	donations := persistence.NewGormDonationRepository(db)
	events := persistence.NewGormEventRepository(db)
	programs := persistence.NewGormProgramRepository(db)

	worker := NewMaintenanceWorker(
		MaintenanceConfig{
			CheckInterval:  time.Hour,
			DonationExpiry: 30 * time.Minute,
			SweepBatchSize: 50,
		},
		donations, events, zap.NewNop(),
	)
	return worker, donations, events, programs
}

func seedDonation(t *testing.T, donations *persistence.GormDonationRepository, programs *persistence.GormProgramRepository, programTitle string, method donation.PaymentMethod, age time.Duration) *donation.Donation {
	program, err := donation.NewProgram(programTitle, "", decimal.NewFromInt(50_000_000))
	require.NoError(t, err)
	require.NoError(t, programs.Save(context.Background(), program))

	don, err := donation.NewDonation(
		program, nil, "Siti Aminah", "siti@example.com",
		decimal.NewFromInt(250_000), method, "", false,
	)
	require.NoError(t, err)

	don.CreatedAt = time.Now().Add(-age)
	require.NoError(t, donations.Save(context.Background(), don))
	return don
}

func seedOpenEvent(t *testing.T, events *persistence.GormEventRepository, title string, endAt time.Time) *event.Event {
	evt, err := event.NewEvent(
		title, "", "Aula IKADA",
		endAt.Add(-4*time.Hour), endAt,
		endAt.Add(-30*24*time.Hour), endAt.Add(-5*time.Hour),
		0, decimal.Zero,
	)
	require.NoError(t, err)
	require.NoError(t, evt.Open())
	require.NoError(t, events.Save(context.Background(), evt))
	return evt
}

func TestMaintenanceWorker_ExpiresStaleMidtransDonations(t *testing.T) {
	worker, donations, _, programs := setupMaintenanceTest(t)
	ctx := context.Background()

	stale := seedDonation(t, donations, programs, "Renovasi Asrama", donation.PaymentMethodMidtrans, time.Hour)
	fresh := seedDonation(t, donations, programs, "Beasiswa Santri", donation.PaymentMethodMidtrans, time.Minute)

	worker.RunOnce(ctx)

	found, err := donations.FindByOrderID(ctx, stale.OrderID)
	require.NoError(t, err)
	assert.Equal(t, donation.DonationStatusExpired, found.Status)

	found, err = donations.FindByOrderID(ctx, fresh.OrderID)
	require.NoError(t, err)
	assert.Equal(t, donation.DonationStatusPending, found.Status)
}

func TestMaintenanceWorker_LeavesTransferDonationsPending(t *testing.T) {
	worker, donations, _, programs := setupMaintenanceTest(t)
	ctx := context.Background()

	// Transfer donations wait for manual confirmation however old they are.
	don := seedDonation(t, donations, programs, "Wakaf Tanah", donation.PaymentMethodTransfer, 48*time.Hour)

	worker.RunOnce(ctx)

	found, err := donations.FindByOrderID(ctx, don.OrderID)
	require.NoError(t, err)
	assert.Equal(t, donation.DonationStatusPending, found.Status)
}

func TestMaintenanceWorker_ClosesEndedEvents(t *testing.T) {
	worker, _, events, _ := setupMaintenanceTest(t)
	ctx := context.Background()

	ended := seedOpenEvent(t, events, "Reuni Akbar 2025", time.Now().Add(-time.Hour))
	upcoming := seedOpenEvent(t, events, "Halal Bihalal", time.Now().Add(72*time.Hour))

	worker.RunOnce(ctx)

	found, err := events.FindByID(ctx, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, event.EventStatusClosed, found.Status)

	found, err = events.FindByID(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, event.EventStatusOpen, found.Status)
}

func TestMaintenanceWorker_StartStop(t *testing.T) {
	worker, _, _, _ := setupMaintenanceTest(t)
	ctx := context.Background()

	require.NoError(t, worker.Start(ctx))
	// A second start is a no-op.
	require.NoError(t, worker.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, worker.Stop(stopCtx))
	require.NoError(t, worker.Stop(stopCtx))
}
