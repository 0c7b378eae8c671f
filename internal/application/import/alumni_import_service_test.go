package importapp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
	csvimport "github.com/ikada/backend/internal/infrastructure/import"
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

func newImportService(alumniRepo *MockAlumniRepository, syubiyahRepo *MockSyubiyahRepository) *AlumniImportService {
	return NewAlumniImportService(alumniRepo, syubiyahRepo, nil, zap.NewNop())
}

func TestAlumniImportService_Import(t *testing.T) {
	alumniRepo := new(MockAlumniRepository)
	syubiyahRepo := new(MockSyubiyahRepository)
	service := newImportService(alumniRepo, syubiyahRepo)

	csv := "full_name,email,graduation_year,phone,syubiyah\n" +
		"Ahmad Fauzi,fauzi@example.com,2010,0812345678,Jakarta\n" +
		"Siti Aminah,siti@example.com,2015,,\n"

	jakarta, err := membership.NewSyubiyah("Jakarta", "DKI Jakarta", "Jakarta", "")
	require.NoError(t, err)

	alumniRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	syubiyahRepo.On("FindByName", mock.Anything, "Jakarta").Return(jakarta, nil).Once()

	importerID := uuid.New()
	var saved []*membership.Alumni
	alumniRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*membership.Alumni))
	}).Return(nil)

	result, err := service.Import(context.Background(), importerID, []byte(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	require.Len(t, saved, 2)
	assert.Equal(t, "Ahmad Fauzi", saved[0].FullName)
	assert.Equal(t, "fauzi@example.com", saved[0].Email)
	require.NotNil(t, saved[0].SyubiyahID)
	assert.Equal(t, jakarta.ID, *saved[0].SyubiyahID)
	assert.Nil(t, saved[1].SyubiyahID)

	// Imported rows come from official records and are verified on the spot.
	assert.Equal(t, membership.VerificationVerified, saved[0].Status)
	require.NotNil(t, saved[0].VerifiedBy)
	assert.Equal(t, importerID, *saved[0].VerifiedBy)
}

func TestAlumniImportService_Import_SkipsBadRows(t *testing.T) {
	alumniRepo := new(MockAlumniRepository)
	syubiyahRepo := new(MockSyubiyahRepository)
	service := newImportService(alumniRepo, syubiyahRepo)

	csv := "full_name,email,graduation_year\n" +
		"Ahmad Fauzi,fauzi@example.com,2010\n" +
		",missing-name@example.com,2011\n" +
		"Budi Santoso,not-an-email,2012\n" +
		"Rina Wati,rina@example.com,abcd\n"

	alumniRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	alumniRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Import(context.Background(), uuid.New(), []byte(csv))

	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 3, result.TotalErrors)

	alumniRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestAlumniImportService_Import_DuplicateEmails(t *testing.T) {
	alumniRepo := new(MockAlumniRepository)
	syubiyahRepo := new(MockSyubiyahRepository)
	service := newImportService(alumniRepo, syubiyahRepo)

	existing, err := membership.NewAlumni("Sudah Ada", "taken@example.com", "", 2005, nil, "")
	require.NoError(t, err)

	csv := "full_name,email,graduation_year\n" +
		"Ahmad Fauzi,fauzi@example.com,2010\n" +
		"Ahmad Kedua,fauzi@example.com,2011\n" +
		"Orang Lama,taken@example.com,2005\n"

	alumniRepo.On("FindByEmail", mock.Anything, "fauzi@example.com").Return(nil, shared.ErrNotFound).Once()
	alumniRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil).Once()
	alumniRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Import(context.Background(), uuid.New(), []byte(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	codes := make([]string, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		codes = append(codes, rowErr.Code)
	}
	assert.Contains(t, codes, csvimport.ErrCodeImportDuplicateInFile)
	assert.Contains(t, codes, csvimport.ErrCodeImportDuplicateInDB)
}

func TestAlumniImportService_Import_UnknownSyubiyah(t *testing.T) {
	alumniRepo := new(MockAlumniRepository)
	syubiyahRepo := new(MockSyubiyahRepository)
	service := newImportService(alumniRepo, syubiyahRepo)

	csv := "full_name,email,graduation_year,syubiyah\n" +
		"Ahmad Fauzi,fauzi@example.com,2010,Atlantis\n"

	alumniRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	syubiyahRepo.On("FindByName", mock.Anything, "Atlantis").Return(nil, shared.ErrNotFound).Once()

	result, err := service.Import(context.Background(), uuid.New(), []byte(csv))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeImportReferenceNotFound, result.Errors[0].Code)

	alumniRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAlumniImportService_Validate(t *testing.T) {
	alumniRepo := new(MockAlumniRepository)
	syubiyahRepo := new(MockSyubiyahRepository)
	service := newImportService(alumniRepo, syubiyahRepo)

	csv := "full_name,email,graduation_year\n" +
		"Ahmad Fauzi,fauzi@example.com,2010\n" +
		"Budi Santoso,not-an-email,2012\n"

	alumniRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	result, err := service.Validate(context.Background(), []byte(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeImportInvalidFormat, result.Errors[0].Code)

	alumniRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAlumniImportService_MissingColumns(t *testing.T) {
	service := newImportService(new(MockAlumniRepository), new(MockSyubiyahRepository))

	_, err := service.Import(context.Background(), uuid.New(), []byte("full_name\nAhmad\n"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "IMPORT_MISSING_COLUMNS", domainErr.Code)
}

func TestAlumniImportService_EmptyFile(t *testing.T) {
	service := newImportService(new(MockAlumniRepository), new(MockSyubiyahRepository))

	_, err := service.Import(context.Background(), uuid.New(), []byte(""))
	assert.ErrorIs(t, err, csvimport.ErrEmptyFile)

	_, err = service.Import(context.Background(), uuid.New(), []byte("full_name,email,graduation_year\n"))
	assert.ErrorIs(t, err, csvimport.ErrNoDataRows)
}
