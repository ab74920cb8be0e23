package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates an account holding exactly the default "user" role.
	// Registration never assigns any other role; elevation happens only
	// through the admin grant endpoint.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the credentials and returns a signed token plus the
	// user's profile. Wrong password and unknown email both surface as
	// domain.ErrInvalidCredentials; no token is issued either way.
	Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error)
}

// RoleService implements the admin-only role registry and grant operations.
type RoleService interface {
	// CreateRole normalizes the name to lowercase, validates its shape and
	// uniqueness, and stores it.
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
	DeleteRole(ctx context.Context, id string) error
	// Grant assigns an existing role to a user.
	Grant(ctx context.Context, userID, roleName string) error
	// Revoke removes a role from a user; removing the last role is refused.
	Revoke(ctx context.Context, userID, roleName string) error
}
