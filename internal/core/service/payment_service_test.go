package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

type stubProcessor struct {
	intents map[string]*ports.PaymentIntent
	created int
}

func newStubProcessor() *stubProcessor {
	return &stubProcessor{intents: make(map[string]*ports.PaymentIntent)}
}

func (p *stubProcessor) CreateIntent(_ context.Context, amount float64, currency, orderRef string) (*ports.PaymentIntent, error) {
	p.created++
	intent := &ports.PaymentIntent{
		ID:       fmt.Sprintf("pi_%d", p.created),
		Status:   domain.IntentPending,
		Amount:   amount,
		Currency: currency,
	}
	p.intents[intent.ID] = intent
	return intent, nil
}

func (p *stubProcessor) GetIntent(_ context.Context, id string) (*ports.PaymentIntent, error) {
	intent, ok := p.intents[id]
	if !ok {
		return nil, fmt.Errorf("intent %s not found", id)
	}
	return intent, nil
}

func TestPaymentService_CreateIntent(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.OrderPending, Total: 119.70})
	processor := newStubProcessor()
	svc := NewPaymentService(orders, processor, "EUR", zerolog.Nop())

	order, _ := orders.FindByID(context.Background(), "o1")
	intent, err := svc.CreateIntent(context.Background(), order)
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if intent.Amount != 119.70 || intent.Currency != "EUR" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if got := orders.intents["o1"]; got.IntentID != intent.ID || got.Status != domain.IntentPending {
		t.Fatalf("intent not recorded on order: %+v", got)
	}
}

func TestPaymentService_CreateIntent_ReusesExisting(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", Status: domain.OrderPending, Total: 10})
	processor := newStubProcessor()
	svc := NewPaymentService(orders, processor, "USD", zerolog.Nop())
	ctx := context.Background()

	order, _ := orders.FindByID(ctx, "o1")
	first, _ := svc.CreateIntent(ctx, order)

	// A second request for the same order must not open a second charge.
	order, _ = orders.FindByID(ctx, "o1")
	second, err := svc.CreateIntent(ctx, order)
	if err != nil {
		t.Fatalf("second CreateIntent: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing intent %s, got %s", first.ID, second.ID)
	}
	if processor.created != 1 {
		t.Fatalf("expected one processor intent, got %d", processor.created)
	}
}

func TestPaymentService_RefreshStatus(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", Status: domain.OrderPending, Total: 10})
	processor := newStubProcessor()
	svc := NewPaymentService(orders, processor, "USD", zerolog.Nop())
	ctx := context.Background()

	order, _ := orders.FindByID(ctx, "o1")
	intent, _ := svc.CreateIntent(ctx, order)

	processor.intents[intent.ID].Status = domain.IntentSucceeded

	order, _ = orders.FindByID(ctx, "o1")
	refreshed, err := svc.RefreshStatus(ctx, order)
	if err != nil {
		t.Fatalf("RefreshStatus: %v", err)
	}
	if refreshed.Status != domain.IntentSucceeded {
		t.Fatalf("expected succeeded, got %s", refreshed.Status)
	}
	if got := orders.intents["o1"]; got.Status != domain.IntentSucceeded {
		t.Fatalf("status not recorded on order: %+v", got)
	}
}

func TestPaymentService_RefreshStatus_NoIntent(t *testing.T) {
	svc := NewPaymentService(newStubOrderRepo(), newStubProcessor(), "USD", zerolog.Nop())

	_, err := svc.RefreshStatus(context.Background(), &domain.Order{ID: "o1"})
	if !errors.Is(err, domain.ErrNoPaymentIntent) {
		t.Fatalf("expected ErrNoPaymentIntent, got %v", err)
	}
}
