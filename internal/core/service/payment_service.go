package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// PaymentService attaches processor payment intents to orders. The processor
// itself is an opaque collaborator; only intent id and status are recorded.
type PaymentService struct {
	orders    ports.OrderRepository
	processor ports.PaymentProcessor
	currency  string
	log       zerolog.Logger
}

func NewPaymentService(orders ports.OrderRepository, processor ports.PaymentProcessor, currency string, log zerolog.Logger) *PaymentService {
	if currency == "" {
		currency = "USD"
	}
	return &PaymentService{orders: orders, processor: processor, currency: currency, log: log}
}

// CreateIntent asks the processor for an intent covering the order total and
// records it on the order. When the order already carries an intent the
// existing one is refreshed instead of creating a duplicate charge.
func (s *PaymentService) CreateIntent(ctx context.Context, order *domain.Order) (*ports.PaymentIntent, error) {
	if order.Payment.IntentID != "" {
		return s.RefreshStatus(ctx, order)
	}

	intent, err := s.processor.CreateIntent(ctx, order.Total, s.currency, order.ID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetPaymentIntent(ctx, order.ID, domain.PaymentInfo{
		IntentID:  intent.ID,
		Status:    intent.Status,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("intent_id", intent.ID).
		Str("status", intent.Status).
		Msg("payment intent created")
	return intent, nil
}

// RefreshStatus re-reads the intent from the processor and updates the
// recorded status on the order.
func (s *PaymentService) RefreshStatus(ctx context.Context, order *domain.Order) (*ports.PaymentIntent, error) {
	if order.Payment.IntentID == "" {
		return nil, domain.ErrNoPaymentIntent
	}

	intent, err := s.processor.GetIntent(ctx, order.Payment.IntentID)
	if err != nil {
		return nil, err
	}

	if intent.Status != order.Payment.Status {
		if err := s.orders.SetPaymentIntent(ctx, order.ID, domain.PaymentInfo{
			IntentID:  intent.ID,
			Status:    intent.Status,
			UpdatedAt: time.Now().UTC(),
		}); err != nil {
			return nil, err
		}
	}
	return intent, nil
}
