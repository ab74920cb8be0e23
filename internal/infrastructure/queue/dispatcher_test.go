package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

type recordingService struct {
	events chan domain.PaymentEvent
}

func (s *recordingService) Process(_ context.Context, event domain.PaymentEvent) error {
	s.events <- event
	return nil
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("order-123")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("order-123"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
}

func TestDispatcher_PerOrderOrdering(t *testing.T) {
	svc := &recordingService{events: make(chan domain.PaymentEvent, 8)}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	statuses := []string{domain.IntentPending, domain.IntentSucceeded, domain.IntentCancelled}
	for _, status := range statuses {
		d.Enqueue(domain.PaymentEvent{OrderID: "o1", IntentID: "pi_1", Status: status})
	}

	for i, want := range statuses {
		select {
		case got := <-svc.events:
			if got.Status != want {
				t.Fatalf("event %d: expected %s, got %s", i, want, got.Status)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}
