package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
	"github.com/ikada/backend/internal/infrastructure/auth"
	"github.com/ikada/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, usernameOrEmail string) (*identity.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Role, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(userRepo *MockUserRepository, roleRepo *MockRoleRepository) *AuthService {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
	return NewAuthService(userRepo, roleRepo, jwtSvc, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("admin", "admin@ikada.or.id", password, "Admin IKADA")
	require.NoError(t, err)
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "rahasia-123")
	roleID := uuid.New()
	user.AssignRole(roleID)

	role, err := identity.NewRole("pengurus", "Pengurus pusat", []string{"alumni:read", "alumni:verify"})
	require.NoError(t, err)
	role.ID = roleID

	userRepo.On("FindByUsername", ctx, "admin").Return(user, nil)
	roleRepo.On("FindByIDs", ctx, []uuid.UUID{roleID}).Return([]identity.Role{*role}, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "rahasia-123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Username)
	assert.ElementsMatch(t, []string{"alumni:read", "alumni:verify"}, result.User.Permissions)
	assert.NotNil(t, user.LastLoginAt)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "rahasia-123")
	userRepo.On("FindByUsername", ctx, "admin").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "salah"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DeactivatedUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "rahasia-123")
	require.NoError(t, user.Deactivate())
	userRepo.On("FindByUsername", ctx, "admin").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "rahasia-123"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "rahasia-123")
	userRepo.On("FindByUsername", ctx, "admin").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginInput{Username: "admin", Password: "rahasia-123"})
	require.NoError(t, err)

	result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEqual(t, login.RefreshToken, result.RefreshToken)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)

	_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "password-lama")
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "password-lama",
		NewPassword: "password-baru",
	})

	require.NoError(t, err)
	assert.True(t, user.CheckPassword("password-baru"))
	assert.False(t, user.CheckPassword("password-lama"))
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	user := newTestUser(t, "password-lama")
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "salah",
		NewPassword: "password-baru",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_ForceLogout(t *testing.T) {
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	svc := newTestAuthService(userRepo, roleRepo)
	ctx := context.Background()

	target := newTestUser(t, "rahasia-123")
	userRepo.On("FindByID", ctx, target.ID).Return(target, nil)

	err := svc.ForceLogout(ctx, ForceLogoutInput{
		AdminUserID:  uuid.New(),
		TargetUserID: target.ID,
		Reason:       "suspicious activity",
	})

	require.NoError(t, err)
}
