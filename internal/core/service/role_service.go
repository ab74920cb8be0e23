package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// RoleService implements the admin-only role registry and grant/revoke
// operations. Role names are normalized to lowercase once here; every later
// comparison is an exact match on the normalized form.
type RoleService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{users: users, roles: roles, log: log}
}

func (s *RoleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !domain.ValidRoleName(name) {
		return nil, domain.ErrInvalidRoleName
	}
	if _, err := s.roles.FindByName(ctx, name); err == nil {
		return nil, domain.ErrRoleExists
	} else if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}

	role, err := s.roles.Create(ctx, &domain.Role{Name: name, CreatedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("role", role.Name).Msg("role created")
	return role, nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// DeleteRole removes a role from the registry. Deletion is refused while any
// user still holds the role; otherwise role checks would keep honoring a name
// the registry no longer knows.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	holders, err := s.users.CountByRole(ctx, role.Name)
	if err != nil {
		return err
	}
	if holders > 0 {
		return domain.ErrRoleInUse
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("role", role.Name).Msg("role deleted")
	return nil
}

// Grant assigns an existing role to an existing user. Granting a role the
// user already holds is a no-op.
func (s *RoleService) Grant(ctx context.Context, userID, roleName string) error {
	roleName = strings.ToLower(strings.TrimSpace(roleName))
	if _, err := s.roles.FindByName(ctx, roleName); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.GrantRole(ctx, userID, roleName); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("role", roleName).Msg("role granted")
	return nil
}

// Revoke removes a role from a user. The repository refuses to remove the
// user's last remaining role, so a user always holds at least one.
func (s *RoleService) Revoke(ctx context.Context, userID, roleName string) error {
	roleName = strings.ToLower(strings.TrimSpace(roleName))
	if err := s.users.RevokeRole(ctx, userID, roleName); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("role", roleName).Msg("role revoked")
	return nil
}
