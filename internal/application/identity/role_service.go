package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
)

// RoleService manages roles and their permissions
type RoleService struct {
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository, logger *zap.Logger) *RoleService {
	return &RoleService{roleRepo: roleRepo, logger: logger}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	if err := s.checkName(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	role, err := identity.NewRole(req.Name, req.Description, req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	resp := ToRoleResponse(role)
	return &resp, nil
}

// GetByID retrieves a role with its user count
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	if count, err := s.roleRepo.CountUsers(ctx, id); err == nil {
		resp.UserCount = &count
	}
	return &resp, nil
}

// List retrieves roles matching the filter
func (s *RoleService) List(ctx context.Context, filter shared.Filter) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses, nil
}

// Update updates a role's name, description and permission set
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role.IsSystem {
		return nil, shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}

	if err := s.checkName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	if err := role.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := role.SetPermissions(req.Permissions); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Delete removes a role unless it is a system role or still assigned
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	count, err := s.roleRepo.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is still assigned to users")
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Role deleted", zap.String("role_id", id.String()))
	return nil
}

func (s *RoleService) checkName(ctx context.Context, name string, excludeID uuid.UUID) error {
	existing, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return shared.NewDomainError("DUPLICATE_NAME", "A role with this name already exists")
	}
	return nil
}
