package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// AddressInput carries the fields of a shipping address. OwnerUserID is the
// resolved effective user, not necessarily the caller.
type AddressInput struct {
	OwnerUserID string
	Label       string
	Street      string
	City        string
	ZipCode     string
	Country     string
}

// AddressService defines use-case operations on shipping addresses.
type AddressService interface {
	// Create stores a new address; a user's first address becomes the
	// default automatically.
	Create(ctx context.Context, input AddressInput) (*domain.ShippingAddress, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error)
	Update(ctx context.Context, addr *domain.ShippingAddress, input AddressInput) (*domain.ShippingAddress, error)
	// Delete refuses to remove the default address while other addresses
	// exist (domain.ErrDefaultAddress).
	Delete(ctx context.Context, addr *domain.ShippingAddress) error
	// SetDefault atomically moves the default flag to the given address.
	SetDefault(ctx context.Context, addr *domain.ShippingAddress) error
}
