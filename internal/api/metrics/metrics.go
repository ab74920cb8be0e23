// Package metrics defines and registers all custom Prometheus metrics for
// the storefront API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected requests at the authentication gate.
// Label:
//   - reason: "missing_token", "malformed", "expired", "bad-signature",
//     "missing-subject", or "subject_rejected"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// AuthzDeniedTotal counts role-gate and ownership denials.
// Label:
//   - kind: "role" or "ownership"
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of authorization denials, by check kind.",
	},
	[]string{"kind"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successfully placed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// ── Payment event metrics ─────────────────────────────────────────────────────

// PaymentEventsProcessedTotal counts processor webhook events that completed
// processing successfully.
// Labels:
//   - status: the intent status reported by the event (e.g. "succeeded")
//   - source: the event source reported by the processor
var PaymentEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_processed_total",
		Help:      "Total number of payment events successfully processed.",
	},
	[]string{"status", "source"},
)

// PaymentEventsErrorsTotal counts payment events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "invalid_transition",
//     "order_not_found", "intent_mismatch", "update_failed")
var PaymentEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_errors_total",
		Help:      "Total number of payment events that failed processing.",
	},
	[]string{"reason"},
)

// PaymentEventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var PaymentEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PaymentEventsQueueDepth tracks the number of events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PaymentEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "payment_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PaymentEventDuration measures how long a single event takes to process.
// Label:
//   - status: the resulting order status
var PaymentEventDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_event_duration_seconds",
		Help:      "Duration of payment event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
