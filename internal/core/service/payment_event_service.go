package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/api/metrics"
	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, intentID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, intentID, status string, ts time.Time) error
}

type paymentEventService struct {
	orders ports.OrderRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewPaymentEventService returns a PaymentEventService implementation.
func NewPaymentEventService(orders ports.OrderRepository, dedup DedupChecker, log zerolog.Logger) ports.PaymentEventService {
	return &paymentEventService{orders: orders, dedup: dedup, log: log}
}

// Process validates, deduplicates, and applies a single processor event.
func (s *paymentEventService) Process(ctx context.Context, in domain.PaymentEvent) error {
	start := time.Now()

	// 1. Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.IntentID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("intent_id", in.IntentID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.PaymentEventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("intent_id", in.IntentID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}
	metrics.PaymentEventsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Find the order the intent belongs to.
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		metrics.PaymentEventsErrorsTotal.WithLabelValues("order_not_found").Inc()
		return fmt.Errorf("process payment event: %w", err)
	}
	if order.Payment.IntentID != "" && order.Payment.IntentID != in.IntentID {
		metrics.PaymentEventsErrorsTotal.WithLabelValues("intent_mismatch").Inc()
		return fmt.Errorf("process payment event: intent %s does not belong to order %s", in.IntentID, in.OrderID)
	}

	// 3. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.IntentID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("intent_id", in.IntentID).Msg("failed to set dedup key")
	}

	now := time.Now().UTC()

	// 4. Non-terminal intent statuses only refresh the recorded status.
	next, terminal := domain.OrderStatusForIntent(in.Status)
	if !terminal {
		if err := s.orders.SetPaymentIntent(ctx, in.OrderID, domain.PaymentInfo{
			IntentID:  in.IntentID,
			Status:    in.Status,
			UpdatedAt: now,
		}); err != nil {
			metrics.PaymentEventsErrorsTotal.WithLabelValues("update_failed").Inc()
			return fmt.Errorf("process payment event: record status: %w", err)
		}
		metrics.PaymentEventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
		return nil
	}

	// 5. Validate the order state machine transition.
	if !order.Status.CanTransitionTo(next) {
		metrics.PaymentEventsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process payment event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	// 6. Apply the transition and the intent status in one write.
	if err := s.orders.UpdateStatus(ctx, in.OrderID, next, in.Status, now); err != nil {
		metrics.PaymentEventsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process payment event: update status: %w", err)
	}

	metrics.PaymentEventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	metrics.PaymentEventDuration.WithLabelValues(string(next)).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("order_id", in.OrderID).
		Str("intent_id", in.IntentID).
		Str("intent_status", in.Status).
		Str("order_status", string(next)).
		Msg("payment event applied")
	return nil
}
