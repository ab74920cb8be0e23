package ports

import (
	"context"
	"time"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts and their
// role assignments.
type UserRepository interface {
	// Create inserts a user with its initial role set in one write.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// GrantRole adds a role name to the user's set (no-op if present).
	GrantRole(ctx context.Context, userID, role string) error
	// RevokeRole removes a role name from the user's set. Implementations
	// must refuse to remove the user's last remaining role
	// (domain.ErrLastRole).
	RevokeRole(ctx context.Context, userID, role string) error
	// CountByRole reports how many users currently hold the role.
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RoleRepository defines persistence operations for the role registry.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Delete(ctx context.Context, id string) error
}
