package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/event"
	"github.com/ikada/backend/internal/domain/shared"
)

// MockEventRepository is a mock implementation of event.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventRepository) FindBySlug(ctx context.Context, slug string) (*event.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRegistrationRepository is a mock implementation of event.RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]event.Registration, error) {
	args := m.Called(ctx, eventID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByEventAndAlumni(ctx context.Context, eventID, alumniID uuid.UUID) (*event.Registration, error) {
	args := m.Called(ctx, eventID, alumniID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) CountActive(ctx context.Context, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) Save(ctx context.Context, registration *event.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newOpenEvent(t *testing.T, quota int) *event.Event {
	t.Helper()
	now := time.Now()
	evt, err := event.NewEvent("Reuni Akbar", "", "Kediri",
		now.Add(30*24*time.Hour), now.Add(31*24*time.Hour),
		now.Add(-time.Hour), now.Add(14*24*time.Hour),
		quota, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, evt.Open())
	return evt
}

func TestRegistrationService_Register(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	evt := newOpenEvent(t, 0)
	field, err := event.NewFormField("Ukuran Kaos", event.FieldTypeSelect, []string{"M", "L", "XL"}, true)
	require.NoError(t, err)
	require.NoError(t, evt.SetFormFields([]event.FormField{field}))

	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)
	regRepo.On("Save", ctx, mock.AnythingOfType("*event.Registration")).Return(nil)

	resp, err := svc.Register(ctx, evt.ID, RegisterRequest{
		Name:    "Budi Santoso",
		Email:   "budi@example.com",
		Answers: map[string]interface{}{"ukuran-kaos": "L"},
	})

	require.NoError(t, err)
	assert.Equal(t, "registered", resp.Status)
	assert.Equal(t, "L", resp.Answers["ukuran-kaos"])
	assert.Nil(t, resp.AlumniID)
}

func TestRegistrationService_Register_MissingRequiredAnswer(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	evt := newOpenEvent(t, 0)
	field, err := event.NewFormField("Ukuran Kaos", event.FieldTypeSelect, []string{"M", "L"}, true)
	require.NoError(t, err)
	require.NoError(t, evt.SetFormFields([]event.FormField{field}))

	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)

	_, err = svc.Register(ctx, evt.ID, RegisterRequest{
		Name:  "Budi",
		Email: "budi@example.com",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_ANSWER", domainErr.Code)
	regRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_QuotaExceeded(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	evt := newOpenEvent(t, 100)
	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)
	regRepo.On("CountActive", ctx, evt.ID).Return(int64(100), nil)

	_, err := svc.Register(ctx, evt.ID, RegisterRequest{
		Name:  "Budi",
		Email: "budi@example.com",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "QUOTA_EXCEEDED", domainErr.Code)
}

func TestRegistrationService_Register_DuplicateAlumni(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	evt := newOpenEvent(t, 0)
	alumniID := uuid.New()
	existing, err := event.NewRegistration(evt, &alumniID, "Budi", "budi@example.com", nil)
	require.NoError(t, err)

	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)
	regRepo.On("FindByEventAndAlumni", ctx, evt.ID, alumniID).Return(existing, nil)

	_, err = svc.Register(ctx, evt.ID, RegisterRequest{
		AlumniID: alumniID.String(),
		Name:     "Budi",
		Email:    "budi@example.com",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_REGISTERED", domainErr.Code)
}

func TestRegistrationService_Register_CancelledAllowsReRegistration(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	evt := newOpenEvent(t, 0)
	alumniID := uuid.New()
	cancelled, err := event.NewRegistration(evt, &alumniID, "Budi", "budi@example.com", nil)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel())

	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)
	regRepo.On("FindByEventAndAlumni", ctx, evt.ID, alumniID).Return(cancelled, nil)
	regRepo.On("Save", ctx, mock.AnythingOfType("*event.Registration")).Return(nil)

	resp, err := svc.Register(ctx, evt.ID, RegisterRequest{
		AlumniID: alumniID.String(),
		Name:     "Budi",
		Email:    "budi@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "registered", resp.Status)
}

func TestRegistrationService_Register_WindowClosed(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewRegistrationService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	evt, err := event.NewEvent("Reuni Akbar", "", "Kediri",
		now.Add(30*24*time.Hour), now.Add(31*24*time.Hour),
		now.Add(-48*time.Hour), now.Add(-24*time.Hour),
		0, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, evt.Open())

	eventRepo.On("FindByID", ctx, evt.ID).Return(evt, nil)

	_, err = svc.Register(ctx, evt.ID, RegisterRequest{Name: "Budi", Email: "budi@example.com"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "REGISTRATION_CLOSED", domainErr.Code)
}

func TestEventService_Create(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewEventService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	eventRepo.On("FindBySlug", ctx, "reuni-akbar-2026").Return(nil, shared.ErrNotFound)
	eventRepo.On("Save", ctx, mock.AnythingOfType("*event.Event")).Return(nil)

	resp, err := svc.Create(ctx, CreateEventRequest{
		Title:      "Reuni Akbar 2026",
		Location:   "Pondok Kediri",
		StartAt:    now.Add(30 * 24 * time.Hour),
		EndAt:      now.Add(31 * 24 * time.Hour),
		RegOpenAt:  now,
		RegCloseAt: now.Add(14 * 24 * time.Hour),
		Quota:      500,
		Fee:        decimal.NewFromInt(150000),
		FormFields: []FormFieldRequest{
			{Label: "Ukuran Kaos", Type: "select", Options: []string{"M", "L", "XL"}, Required: true},
			{Label: "Jumlah Pendamping", Type: "number"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "reuni-akbar-2026", resp.Slug)
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, resp.FormFields, 2)
	assert.Equal(t, "ukuran-kaos", resp.FormFields[0].Key)
	assert.Equal(t, "jumlah-pendamping", resp.FormFields[1].Key)
}

func TestEventService_GetBySlug_DraftHidden(t *testing.T) {
	eventRepo := new(MockEventRepository)
	regRepo := new(MockRegistrationRepository)
	svc := NewEventService(eventRepo, regRepo, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	evt, err := event.NewEvent("Rapat Internal", "", "",
		now.Add(time.Hour), now.Add(2*time.Hour), now, now.Add(time.Hour), 0, decimal.Zero)
	require.NoError(t, err)

	eventRepo.On("FindBySlug", ctx, "rapat-internal").Return(evt, nil)

	_, err = svc.GetBySlug(ctx, "rapat-internal")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
