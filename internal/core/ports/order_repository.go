package ports

import (
	"context"
	"time"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// ListOrdersFilter carries query parameters for listing orders.
type ListOrdersFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to owner
	Status string // optional: filter by order status
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the service)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Place atomically decrements stock for every line item, inserts the
	// order, and clears the owner's cart. A stock shortfall or any write
	// failure rolls the whole placement back
	// (domain.ErrInsufficientStock on shortfall).
	Place(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns a page of orders matching filter and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// UpdateStatus transitions the order and records the payment intent
	// status in the same write.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, intentStatus string, at time.Time) error
	// SetPaymentIntent records the processor intent attached to the order.
	SetPaymentIntent(ctx context.Context, id string, payment domain.PaymentInfo) error
}
