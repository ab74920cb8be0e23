package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// Denial reasons surfaced in AuthResult.
const (
	DenyNotFound     = "not-found"
	DenyForbidden    = "forbidden"
	DenyNoIdentifier = "no-identifier"
)

// ResourceKey carries the key the ownership service chose for the lookup:
// exactly one of ResourceID (primary key) or OwnerUserID (owning-user
// foreign key) is set.
type ResourceKey struct {
	ResourceID  string
	OwnerUserID string
}

// LookupFunc fetches one resource by the chosen key. Each resource type
// plugs in its own finder; a miss is reported by returning the type's
// not-found sentinel (anything wrapping mongo.ErrNoDocuments counts too;
// the service treats only infrastructure faults as errors).
type LookupFunc func(ctx context.Context, key ResourceKey) (domain.Ownable, error)

// VerifyOptions parameterizes a single ownership check.
type VerifyOptions struct {
	// ResourceID looks the resource up by primary key.
	ResourceID string
	// OwnerUserID looks the resource up by its owning-user foreign key
	// ("does this user have a resource of this type"). Exactly one of
	// ResourceID / OwnerUserID must be set.
	OwnerUserID string
	// Lookup is the injected finder for the resource type.
	Lookup LookupFunc
	// IncludeOwnerProfile additionally resolves the owning user's profile
	// on success, for audit-style responses when an admin acts on another
	// user's resource.
	IncludeOwnerProfile bool
}

// AuthResult is the sum type all controllers branch on: either
// Authorized{Resource, IsOwner, IsAdmin} or Denied{StatusCode, Reason}.
// The fetched resource is returned so callers need no second query.
type AuthResult struct {
	Authorized bool
	StatusCode int
	Reason     string
	Resource   domain.Ownable
	IsOwner    bool
	IsAdmin    bool
	// OwnerProfile is set only when VerifyOptions.IncludeOwnerProfile was
	// requested and the owning user still exists.
	OwnerProfile *domain.UserProfile
}

// Authorizer decides whether a principal may act on a target resource.
type Authorizer interface {
	// VerifyOwnership authorizes iff the principal owns the resource or
	// holds the admin role. Denials (404/403/no-identifier) come back in
	// the AuthResult; only unexpected lookup failures are returned as an
	// error so bugs are not masked as denials.
	VerifyOwnership(ctx context.Context, principalUserID, resourceType string, opts VerifyOptions) (AuthResult, error)
	// ValidateEffectiveUser resolves which user a write is attributed to:
	// the principal itself, or (for admins only) a different existing
	// user named in the request.
	ValidateEffectiveUser(ctx context.Context, principal domain.Principal, requestedOwnerID string) (string, error)
}
