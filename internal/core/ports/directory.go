package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// Directory resolves a user identity to its active status and assigned
// roles. It is the only path by which role information enters request
// handling.
type Directory interface {
	// FindByID fetches the identity projection for a user, including role
	// names and excluding the password hash. Returns (nil, nil) when the
	// user does not exist; a non-nil error signals an infrastructure fault.
	FindByID(ctx context.Context, userID string) (*domain.UserProfile, error)
	// Validate rejects an absent profile (domain.ErrUserNotFound) and an
	// inactive one (domain.ErrUserInactive); otherwise it projects the
	// profile into a Principal.
	Validate(profile *domain.UserProfile) (domain.Principal, error)
	// HasRole reports whether the user currently holds the role. A missing
	// user holds no roles, so the answer is false, not an error.
	HasRole(ctx context.Context, userID, role string) (bool, error)
	// HasAnyRole reports whether the user holds at least one of the roles.
	HasAnyRole(ctx context.Context, userID string, roles ...string) (bool, error)
}
