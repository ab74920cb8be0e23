package service

import (
	"context"
	"errors"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// DirectoryService resolves user identities to their active status and role
// set. All role reads in request handling go through here, so a grant or
// revocation is visible on the very next request.
type DirectoryService struct {
	users ports.UserRepository
}

func NewDirectoryService(users ports.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// FindByID returns the identity projection for a user, or (nil, nil) when no
// such user exists.
func (d *DirectoryService) FindByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Active:    u.Active,
		Roles:     u.Roles,
	}, nil
}

// Validate rejects absent and inactive profiles, projecting the rest into a
// request-scoped Principal.
func (d *DirectoryService) Validate(profile *domain.UserProfile) (domain.Principal, error) {
	if profile == nil {
		return domain.Principal{}, domain.ErrUserNotFound
	}
	if !profile.Active {
		return domain.Principal{}, domain.ErrUserInactive
	}
	return domain.NewPrincipal(profile), nil
}

// HasRole reports whether the user currently holds the role. "No such user"
// implies "holds no roles", so a missing user yields false, not an error.
func (d *DirectoryService) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return d.HasAnyRole(ctx, userID, role)
}

// HasAnyRole reports whether the user holds at least one of the roles.
func (d *DirectoryService) HasAnyRole(ctx context.Context, userID string, roles ...string) (bool, error) {
	profile, err := d.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}
	for _, held := range profile.Roles {
		for _, want := range roles {
			if held == want {
				return true, nil
			}
		}
	}
	return false, nil
}
