package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
)

// UserService manages admin user accounts
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Create creates a new admin user with the given roles
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_USERNAME", "A user with this username already exists")
	} else if err != nil && err != shared.ErrNotFound {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}

	roleIDs, err := s.resolveRoleIDs(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	for _, roleID := range roleIDs {
		user.AssignRole(roleID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Admin user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users matching the filter
func (s *UserService) List(ctx context.Context, req UserListFilter, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Search != "" {
		filter.Search = req.Search
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Update updates a user's profile and role assignments
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Email, req.FullName); err != nil {
		return nil, err
	}

	roleIDs, err := s.resolveRoleIDs(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	user.RoleIDs = roleIDs
	user.IncrementVersion()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate reactivates a deactivated user
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, func(u *identity.User) error { return u.Activate() })
}

// Deactivate blocks a user from logging in
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, func(u *identity.User) error { return u.Deactivate() })
}

// Delete removes a user and its role assignments
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Admin user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) setStatus(ctx context.Context, id uuid.UUID, change func(*identity.User) error) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(user); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// resolveRoleIDs parses and verifies that every referenced role exists
func (s *UserService) resolveRoleIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	roleIDs := make([]uuid.UUID, 0, len(raw))
	for _, idStr := range raw {
		roleID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role ID: "+idStr)
		}
		roleIDs = append(roleIDs, roleID)
	}

	if len(roleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, roleIDs)
		if err != nil {
			return nil, err
		}
		if len(roles) != len(roleIDs) {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "One or more roles do not exist")
		}
	}
	return roleIDs, nil
}
