package domain

import "time"

// Payment intent statuses reported by the external processor. The set is
// defined by the processor; only the values below are acted upon.
const (
	IntentPending   = "pending"
	IntentSucceeded = "succeeded"
	IntentFailed    = "failed"
	IntentCancelled = "cancelled"
)

// PaymentEvent is a processor webhook notification about a payment intent.
type PaymentEvent struct {
	IntentID  string    `json:"intent_id"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// OrderStatusForIntent maps a terminal intent status to the order status it
// implies. A pending or failed intent leaves the order status untouched
// (the intent status itself is still recorded on the order).
func OrderStatusForIntent(intentStatus string) (OrderStatus, bool) {
	switch intentStatus {
	case IntentSucceeded:
		return OrderPaid, true
	case IntentCancelled:
		return OrderCancelled, true
	default:
		return "", false
	}
}
