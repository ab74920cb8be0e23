package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

func TestOrderService_Place_FreezesCartLines(t *testing.T) {
	carts := newStubCartRepo()
	carts.carts["u1"] = &domain.Cart{
		UserID: "u1",
		Items: []domain.CartItem{
			{ProductID: "p1", Name: "Keyboard", UnitPrice: 49.90, Quantity: 2},
			{ProductID: "p2", Name: "Mouse", UnitPrice: 19.90, Quantity: 1},
		},
	}
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, carts, zerolog.Nop())

	order, err := svc.Place(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if len(order.Items) != 2 || order.Items[0].UnitPrice != 49.90 {
		t.Fatalf("expected frozen cart lines, got %+v", order.Items)
	}
	if order.Total != 2*49.90+19.90 {
		t.Fatalf("unexpected total %.2f", order.Total)
	}
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	carts := newStubCartRepo()
	svc := NewOrderService(newStubOrderRepo(), carts, zerolog.Nop())
	ctx := context.Background()

	// No cart at all.
	if _, err := svc.Place(ctx, "u1"); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// A cart with no lines.
	carts.carts["u1"] = &domain.Cart{UserID: "u1"}
	if _, err := svc.Place(ctx, "u1"); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Place_StockShortfall(t *testing.T) {
	carts := newStubCartRepo()
	carts.carts["u1"] = &domain.Cart{
		UserID: "u1",
		Items:  []domain.CartItem{{ProductID: "p1", Quantity: 99}},
	}
	orders := newStubOrderRepo()
	orders.placeErr = domain.ErrInsufficientStock
	svc := NewOrderService(orders, carts, zerolog.Nop())

	if _, err := svc.Place(context.Background(), "u1"); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		status  domain.OrderStatus
		wantErr error
	}{
		{domain.OrderPending, nil},
		{domain.OrderPaid, nil},
		{domain.OrderShipped, domain.ErrInvalidTransition},
		{domain.OrderDelivered, domain.ErrInvalidTransition},
		{domain.OrderCancelled, domain.ErrInvalidTransition},
	}
	for _, tc := range cases {
		orders := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: tc.status})
		svc := NewOrderService(orders, newStubCartRepo(), zerolog.Nop())

		got, err := svc.Cancel(ctx, &domain.Order{ID: "o1", UserID: "u1", Status: tc.status})
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("cancel from %s: expected %v, got %v", tc.status, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("cancel from %s: %v", tc.status, err)
		}
		if got.Status != domain.OrderCancelled {
			t.Fatalf("expected cancelled, got %s", got.Status)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		ok       bool
	}{
		{domain.OrderPending, domain.OrderPaid, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderShipped, false},
		{domain.OrderPaid, domain.OrderShipped, true},
		{domain.OrderPaid, domain.OrderCancelled, true},
		{domain.OrderPaid, domain.OrderDelivered, false},
		{domain.OrderShipped, domain.OrderDelivered, true},
		{domain.OrderShipped, domain.OrderCancelled, false},
		{domain.OrderDelivered, domain.OrderCancelled, false},
		{domain.OrderCancelled, domain.OrderPaid, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestOrderService_List_ScopesToOwner(t *testing.T) {
	orders := newStubOrderRepo(
		&domain.Order{ID: "o1", UserID: "u1", CreatedAt: time.Now()},
		&domain.Order{ID: "o2", UserID: "u2", CreatedAt: time.Now()},
	)
	svc := NewOrderService(orders, newStubCartRepo(), zerolog.Nop())

	result, err := svc.List(context.Background(), ports.ListOrdersFilter{UserID: "u1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].UserID != "u1" {
		t.Fatalf("expected only u1's orders, got %+v", result)
	}
}
