package ports

import (
	"context"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

// PaymentIntent mirrors the processor's view of a payment.
type PaymentIntent struct {
	ID       string
	Status   string
	Amount   float64
	Currency string
}

// PaymentProcessor is the opaque external payment service. This system's
// only obligation is to record the returned intent id and status on the
// order; the processor protocol is not modelled here.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount float64, currency, orderRef string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// PaymentService attaches processor intents to orders.
type PaymentService interface {
	// CreateIntent asks the processor for an intent covering the order
	// total and records id/status on the order.
	CreateIntent(ctx context.Context, order *domain.Order) (*PaymentIntent, error)
	// RefreshStatus re-reads the intent from the processor and updates the
	// recorded status.
	RefreshStatus(ctx context.Context, order *domain.Order) (*PaymentIntent, error)
}

// PaymentEventService consumes processor webhook events.
type PaymentEventService interface {
	Process(ctx context.Context, event domain.PaymentEvent) error
}
