package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// AddressRepository defines persistence operations for shipping addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.ShippingAddress) (*domain.ShippingAddress, error)
	FindByID(ctx context.Context, id string) (*domain.ShippingAddress, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, a *domain.ShippingAddress) error
	Delete(ctx context.Context, id string) error
	// SetDefault unsets the user's previous default and marks addressID as
	// the new default inside one transaction: a failure anywhere leaves the
	// previous state fully intact.
	SetDefault(ctx context.Context, userID, addressID string) error
}
