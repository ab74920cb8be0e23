package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// CartRepository defines persistence operations for shopping carts.
// Carts are keyed by their owning user: one cart per user.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	// Upsert stores the cart, creating it when the user has none yet.
	Upsert(ctx context.Context, cart *domain.Cart) error
	DeleteByUserID(ctx context.Context, userID string) error
}
