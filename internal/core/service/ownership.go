package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// notFoundSentinels are the lookup errors that mean "no such resource"
// rather than an infrastructure fault.
var notFoundSentinels = []error{
	domain.ErrOrderNotFound,
	domain.ErrCartNotFound,
	domain.ErrReviewNotFound,
	domain.ErrAddressNotFound,
	domain.ErrProductNotFound,
	domain.ErrUserNotFound,
}

func isNotFound(err error) bool {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// OwnershipService is the central authorization primitive: given a principal
// and a target resource, it decides whether the principal may act on it
// (owner or admin), fetching the resource in the same step so callers need
// no second query.
type OwnershipService struct {
	directory ports.Directory
	log       zerolog.Logger
}

func NewOwnershipService(directory ports.Directory, log zerolog.Logger) *OwnershipService {
	return &OwnershipService{directory: directory, log: log}
}

// VerifyOwnership runs the injected lookup with the chosen key and authorizes
// iff the principal owns the fetched resource or holds the admin role.
// Denials come back as a tagged AuthResult; only unexpected lookup failures
// are returned as an error, so bugs are not masked as denials.
//
// A denied non-owner learns that the resource exists (403, not 404).
func (s *OwnershipService) VerifyOwnership(ctx context.Context, principalUserID, resourceType string, opts ports.VerifyOptions) (ports.AuthResult, error) {
	var key ports.ResourceKey
	switch {
	case opts.ResourceID != "":
		key.ResourceID = opts.ResourceID
	case opts.OwnerUserID != "":
		key.OwnerUserID = opts.OwnerUserID
	default:
		// Caller contract violation: neither identifier supplied.
		s.log.Error().Str("resource_type", resourceType).Msg("ownership check called without an identifier")
		return ports.AuthResult{StatusCode: http.StatusBadRequest, Reason: ports.DenyNoIdentifier}, nil
	}

	resource, err := opts.Lookup(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return ports.AuthResult{StatusCode: http.StatusNotFound, Reason: ports.DenyNotFound}, nil
		}
		return ports.AuthResult{}, fmt.Errorf("ownership: lookup %s: %w", resourceType, err)
	}

	isOwner := resource.OwnerID() == principalUserID
	isAdmin, err := s.directory.HasRole(ctx, principalUserID, domain.RoleAdmin)
	if err != nil {
		return ports.AuthResult{}, fmt.Errorf("ownership: role check: %w", err)
	}

	if !isOwner && !isAdmin {
		s.log.Debug().
			Str("resource_type", resourceType).
			Str("principal", principalUserID).
			Msg("ownership denied")
		return ports.AuthResult{StatusCode: http.StatusForbidden, Reason: ports.DenyForbidden}, nil
	}

	result := ports.AuthResult{
		Authorized: true,
		StatusCode: http.StatusOK,
		Resource:   resource,
		IsOwner:    isOwner,
		IsAdmin:    isAdmin,
	}

	if opts.IncludeOwnerProfile {
		profile, err := s.directory.FindByID(ctx, resource.OwnerID())
		if err != nil {
			return ports.AuthResult{}, fmt.Errorf("ownership: owner profile: %w", err)
		}
		result.OwnerProfile = profile
	}

	return result, nil
}

// ValidateEffectiveUser resolves which user a write is attributed to: the
// caller's own id, unless an admin explicitly names a different, existing
// user. Non-admins naming someone else are refused; admins naming a missing
// user get not-found.
func (s *OwnershipService) ValidateEffectiveUser(ctx context.Context, principal domain.Principal, requestedOwnerID string) (string, error) {
	if requestedOwnerID == "" || requestedOwnerID == principal.UserID {
		return principal.UserID, nil
	}

	isAdmin, err := s.directory.HasRole(ctx, principal.UserID, domain.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("effective user: role check: %w", err)
	}
	if !isAdmin {
		return "", domain.ErrForbidden
	}

	profile, err := s.directory.FindByID(ctx, requestedOwnerID)
	if err != nil {
		return "", fmt.Errorf("effective user: lookup: %w", err)
	}
	if profile == nil {
		return "", domain.ErrUserNotFound
	}
	return profile.ID, nil
}
