package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

func setupEventTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&event.Event{}, &event.FormField{}, &event.Registration{})
	require.NoError(t, err)

	return db
}

func createTestEvent(t *testing.T, repo *GormEventRepository, title string, startAt time.Time) *event.Event {
	evt, err := event.NewEvent(
		title, "", "Gedung IKADA Pusat",
		startAt, startAt.Add(6*time.Hour),
		startAt.Add(-30*24*time.Hour), startAt.Add(-24*time.Hour),
		100, decimal.Zero,
	)
	require.NoError(t, err)

	sizeField, err := event.NewFormField("Ukuran Kaos", event.FieldTypeSelect, []string{"S", "M", "L", "XL"}, true)
	require.NoError(t, err)
	nameField, err := event.NewFormField("Nama Pondok", event.FieldTypeText, nil, false)
	require.NoError(t, err)
	require.NoError(t, evt.SetFormFields([]event.FormField{sizeField, nameField}))

	require.NoError(t, repo.Save(context.Background(), evt))
	return evt
}

func TestGormEventRepository_SaveAndReloadFormFields(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	evt := createTestEvent(t, repo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))

	found, err := repo.FindBySlug(ctx, evt.Slug)

	require.NoError(t, err)
	require.Len(t, found.FormFields, 2)
	assert.Equal(t, "ukuran-kaos", found.FormFields[0].Key)
	assert.Equal(t, "nama-pondok", found.FormFields[1].Key)
}

func TestGormEventRepository_SaveReplacesFormFields(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	evt := createTestEvent(t, repo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))

	phoneField, err := event.NewFormField("Nomor WhatsApp", event.FieldTypeText, nil, true)
	require.NoError(t, err)
	require.NoError(t, evt.SetFormFields([]event.FormField{phoneField}))
	require.NoError(t, repo.Save(ctx, evt))

	found, err := repo.FindByID(ctx, evt.ID)
	require.NoError(t, err)
	require.Len(t, found.FormFields, 1)
	assert.Equal(t, "nomor-whatsapp", found.FormFields[0].Key)

	var fieldCount int64
	require.NoError(t, db.Model(&event.FormField{}).Where("event_id = ?", evt.ID).Count(&fieldCount).Error)
	assert.Equal(t, int64(1), fieldCount)
}

func TestGormEventRepository_FindAll_Upcoming(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	createTestEvent(t, repo, "Haul Akbar Tahun Lalu", time.Now().Add(-365*24*time.Hour))
	future := createTestEvent(t, repo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))

	events, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"upcoming": true},
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, future.ID, events[0].ID)
}

func TestGormEventRepository_DeleteCascades(t *testing.T) {
	db := setupEventTestDB(t)
	eventRepo := NewGormEventRepository(db)
	regRepo := NewGormRegistrationRepository(db)
	ctx := context.Background()

	evt := createTestEvent(t, eventRepo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))
	require.NoError(t, evt.Open())
	require.NoError(t, eventRepo.Save(ctx, evt))

	reg, err := event.NewRegistration(evt, nil, "Ahmad Fauzi", "fauzi@example.com",
		map[string]interface{}{"ukuran-kaos": "L"})
	require.NoError(t, err)
	require.NoError(t, regRepo.Save(ctx, reg))

	require.NoError(t, eventRepo.Delete(ctx, evt.ID))

	var regCount, fieldCount int64
	require.NoError(t, db.Model(&event.Registration{}).Where("event_id = ?", evt.ID).Count(&regCount).Error)
	require.NoError(t, db.Model(&event.FormField{}).Where("event_id = ?", evt.ID).Count(&fieldCount).Error)
	assert.Equal(t, int64(0), regCount)
	assert.Equal(t, int64(0), fieldCount)
}

func TestGormRegistrationRepository_CountActive(t *testing.T) {
	db := setupEventTestDB(t)
	eventRepo := NewGormEventRepository(db)
	regRepo := NewGormRegistrationRepository(db)
	ctx := context.Background()

	evt := createTestEvent(t, eventRepo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))
	require.NoError(t, evt.Open())
	require.NoError(t, eventRepo.Save(ctx, evt))

	first, err := event.NewRegistration(evt, nil, "Ahmad Fauzi", "fauzi@example.com",
		map[string]interface{}{"ukuran-kaos": "L"})
	require.NoError(t, err)
	require.NoError(t, regRepo.Save(ctx, first))

	second, err := event.NewRegistration(evt, nil, "Siti Maryam", "maryam@example.com",
		map[string]interface{}{"ukuran-kaos": "M"})
	require.NoError(t, err)
	require.NoError(t, second.Cancel())
	require.NoError(t, regRepo.Save(ctx, second))

	count, err := regRepo.CountActive(ctx, evt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormRegistrationRepository_FindByEventAndAlumni(t *testing.T) {
	db := setupEventTestDB(t)
	eventRepo := NewGormEventRepository(db)
	regRepo := NewGormRegistrationRepository(db)
	ctx := context.Background()

	evt := createTestEvent(t, eventRepo, "Reuni Akbar 2026", time.Now().Add(90*24*time.Hour))
	require.NoError(t, evt.Open())
	require.NoError(t, eventRepo.Save(ctx, evt))

	alumniID := uuid.New()
	reg, err := event.NewRegistration(evt, &alumniID, "Ahmad Fauzi", "fauzi@example.com",
		map[string]interface{}{"ukuran-kaos": "L"})
	require.NoError(t, err)
	require.NoError(t, regRepo.Save(ctx, reg))

	found, err := regRepo.FindByEventAndAlumni(ctx, evt.ID, alumniID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, found.ID)

	_, err = regRepo.FindByEventAndAlumni(ctx, evt.ID, uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}
