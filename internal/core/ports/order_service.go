package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// ListOrdersResult is returned by List.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations on orders.
type OrderService interface {
	// Place builds an order from the owner's cart (frozen names and prices),
	// decrements stock, and clears the cart atomically. An empty or missing
	// cart yields domain.ErrEmptyCart.
	Place(ctx context.Context, ownerUserID string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) (*ListOrdersResult, error)
	// Cancel transitions the order to cancelled; only pending and paid
	// orders can be cancelled (domain.ErrInvalidTransition otherwise).
	Cancel(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
