package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/api/metrics"
	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// OrderService implements order use cases.
type OrderService struct {
	orders ports.OrderRepository
	carts  ports.CartRepository
	log    zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, carts ports.CartRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, carts: carts, log: log}
}

// Place turns the owner's cart into an order. Line names and prices are
// frozen from the cart; stock decrement, order insert, and cart clearing are
// one transactional unit in the repository.
func (s *OrderService) Place(ctx context.Context, ownerUserID string) (*domain.Order, error) {
	cart, err := s.carts.FindByUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:    ownerUserID,
		Items:     make([]domain.OrderItem, 0, len(cart.Items)),
		Total:     cart.Total(),
		Status:    domain.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	placed, err := s.orders.Place(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	s.log.Info().
		Str("order_id", placed.ID).
		Str("user_id", ownerUserID).
		Float64("total", placed.Total).
		Msg("order placed")
	return placed, nil
}

func (s *OrderService) List(ctx context.Context, filter ports.ListOrdersFilter) (*ports.ListOrdersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Cancel transitions the order to cancelled. Shipped and delivered orders
// cannot be cancelled.
func (s *OrderService) Cancel(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if !order.Status.CanTransitionTo(domain.OrderCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, order.ID, domain.OrderCancelled, order.Payment.Status, now); err != nil {
		return nil, err
	}

	cancelled := *order
	cancelled.Status = domain.OrderCancelled
	cancelled.UpdatedAt = now

	s.log.Info().Str("order_id", order.ID).Msg("order cancelled")
	return &cancelled, nil
}
