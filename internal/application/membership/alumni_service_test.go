package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
)

// MockAlumniRepository is a mock implementation of AlumniRepository
type MockAlumniRepository struct {
	mock.Mock
}

func (m *MockAlumniRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Alumni, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Alumni), args.Error(1)
}

func (m *MockAlumniRepository) FindByEmail(ctx context.Context, email string) (*membership.Alumni, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Alumni), args.Error(1)
}

func (m *MockAlumniRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Alumni, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]membership.Alumni), args.Error(1)
}

func (m *MockAlumniRepository) Save(ctx context.Context, alumni *membership.Alumni) error {
	args := m.Called(ctx, alumni)
	return args.Error(0)
}

func (m *MockAlumniRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlumniRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlumniRepository) CountBySyubiyah(ctx context.Context, syubiyahID uuid.UUID) (int64, error) {
	args := m.Called(ctx, syubiyahID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSyubiyahRepository is a mock implementation of SyubiyahRepository
type MockSyubiyahRepository struct {
	mock.Mock
}

func (m *MockSyubiyahRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Syubiyah, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Syubiyah), args.Error(1)
}

func (m *MockSyubiyahRepository) FindByName(ctx context.Context, name string) (*membership.Syubiyah, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Syubiyah), args.Error(1)
}

func (m *MockSyubiyahRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Syubiyah, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]membership.Syubiyah), args.Error(1)
}

func (m *MockSyubiyahRepository) Save(ctx context.Context, syubiyah *membership.Syubiyah) error {
	args := m.Called(ctx, syubiyah)
	return args.Error(0)
}

func (m *MockSyubiyahRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSyubiyahRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestAlumniService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a pending alumni", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		svc := NewAlumniService(alumniRepo, new(MockSyubiyahRepository), nil)

		alumniRepo.On("FindByEmail", ctx, "budi@example.com").Return(nil, shared.ErrNotFound)
		alumniRepo.On("Save", ctx, mock.AnythingOfType("*membership.Alumni")).Return(nil)

		resp, err := svc.Register(ctx, RegisterAlumniRequest{
			FullName:       "Budi Santoso",
			Email:          "budi@example.com",
			GraduationYear: 2010,
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		alumniRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		svc := NewAlumniService(alumniRepo, new(MockSyubiyahRepository), nil)

		existing, _ := membership.NewAlumni("Budi", "budi@example.com", "", 2010, nil, "")
		alumniRepo.On("FindByEmail", ctx, "budi@example.com").Return(existing, nil)

		_, err := svc.Register(ctx, RegisterAlumniRequest{
			FullName:       "Budi Santoso",
			Email:          "budi@example.com",
			GraduationYear: 2010,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	})

	t.Run("rejects unknown syubiyah", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		syubiyahRepo := new(MockSyubiyahRepository)
		svc := NewAlumniService(alumniRepo, syubiyahRepo, nil)

		syubiyahID := uuid.New()
		alumniRepo.On("FindByEmail", ctx, "budi@example.com").Return(nil, shared.ErrNotFound)
		syubiyahRepo.On("FindByID", ctx, syubiyahID).Return(nil, shared.ErrNotFound)

		_, err := svc.Register(ctx, RegisterAlumniRequest{
			FullName:       "Budi Santoso",
			Email:          "budi@example.com",
			GraduationYear: 2010,
			SyubiyahID:     &syubiyahID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SYUBIYAH_NOT_FOUND", domainErr.Code)
	})
}

func TestAlumniService_Verification(t *testing.T) {
	ctx := context.Background()
	verifierID := uuid.New()

	t.Run("verify transitions pending to verified", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		svc := NewAlumniService(alumniRepo, new(MockSyubiyahRepository), nil)

		alumni, _ := membership.NewAlumni("Budi", "budi@example.com", "", 2010, nil, "")
		alumniRepo.On("FindByID", ctx, alumni.ID).Return(alumni, nil)
		alumniRepo.On("Save", ctx, alumni).Return(nil)

		resp, err := svc.Verify(ctx, alumni.ID, verifierID)
		require.NoError(t, err)
		assert.Equal(t, "verified", resp.Status)
		require.NotNil(t, resp.VerifiedBy)
		assert.Equal(t, verifierID, *resp.VerifiedBy)
	})

	t.Run("reject requires a reason and leaves audit fields", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		svc := NewAlumniService(alumniRepo, new(MockSyubiyahRepository), nil)

		alumni, _ := membership.NewAlumni("Budi", "budi@example.com", "", 2010, nil, "")
		alumniRepo.On("FindByID", ctx, alumni.ID).Return(alumni, nil)
		alumniRepo.On("Save", ctx, alumni).Return(nil)

		resp, err := svc.Reject(ctx, alumni.ID, verifierID, RejectAlumniRequest{Reason: "Data ijazah tidak cocok"})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		assert.Equal(t, "Data ijazah tidak cocok", resp.RejectionReason)
	})

	t.Run("verified alumni cannot be rejected", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		svc := NewAlumniService(alumniRepo, new(MockSyubiyahRepository), nil)

		alumni, _ := membership.NewAlumni("Budi", "budi@example.com", "", 2010, nil, "")
		require.NoError(t, alumni.Verify(verifierID))
		alumniRepo.On("FindByID", ctx, alumni.ID).Return(alumni, nil)

		_, err := svc.Reject(ctx, alumni.ID, verifierID, RejectAlumniRequest{Reason: "x"})
		require.Error(t, err)
	})
}

func TestSyubiyahService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses when alumni reference it", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		syubiyahRepo := new(MockSyubiyahRepository)
		svc := NewSyubiyahService(syubiyahRepo, alumniRepo)

		chapter, _ := membership.NewSyubiyah("Kediri Kota", "Jawa Timur", "Kediri", "")
		syubiyahRepo.On("FindByID", ctx, chapter.ID).Return(chapter, nil)
		alumniRepo.On("CountBySyubiyah", ctx, chapter.ID).Return(int64(12), nil)

		err := svc.Delete(ctx, chapter.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_MEMBERS", domainErr.Code)
		syubiyahRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty chapter", func(t *testing.T) {
		alumniRepo := new(MockAlumniRepository)
		syubiyahRepo := new(MockSyubiyahRepository)
		svc := NewSyubiyahService(syubiyahRepo, alumniRepo)

		chapter, _ := membership.NewSyubiyah("Kediri Kota", "Jawa Timur", "Kediri", "")
		syubiyahRepo.On("FindByID", ctx, chapter.ID).Return(chapter, nil)
		alumniRepo.On("CountBySyubiyah", ctx, chapter.ID).Return(int64(0), nil)
		syubiyahRepo.On("Delete", ctx, chapter.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, chapter.ID))
	})
}
