package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// CartService defines use-case operations on a user's cart. The owner is
// always the authenticated principal; carts cannot be acted on by id.
type CartService interface {
	// Get returns the user's cart, or an empty cart when none exists yet.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem adds quantity of the product, merging with an existing line.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	// UpdateItem sets the line quantity; zero removes the line.
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}
