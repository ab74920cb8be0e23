package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// EventQueue accepts payment events for asynchronous processing.
type EventQueue interface {
	Enqueue(event domain.PaymentEvent)
}

// PaymentHandler attaches payment intents to orders and receives processor
// webhooks. Intent routes go through the ownership service; the webhook route
// is unauthenticated and merely queues the event.
type PaymentHandler struct {
	paymentService ports.PaymentService
	orders         ports.OrderRepository
	authorizer     ports.Authorizer
	queue          EventQueue
}

func NewPaymentHandler(paymentService ports.PaymentService, orders ports.OrderRepository, authorizer ports.Authorizer, queue EventQueue) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orders:         orders,
		authorizer:     authorizer,
		queue:          queue,
	}
}

func (h *PaymentHandler) lookup(ctx context.Context, key ports.ResourceKey) (domain.Ownable, error) {
	return h.orders.FindByID(ctx, key.ResourceID)
}

type paymentIntentResponse struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

type webhookRequest struct {
	IntentID  string    `json:"intent_id" validate:"required"`
	OrderID   string    `json:"order_id" validate:"required"`
	Status    string    `json:"status" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// CreateIntent asks the processor for a payment intent covering the order
// total, owner or admin only.
//
// @Summary      Create a payment intent for an order
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      201  {object}  paymentIntentResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id}/payment [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "order", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "order", res)
	}

	intent, err := h.paymentService.CreateIntent(c.Request().Context(), res.Resource.(*domain.Order))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, paymentIntentResponse{IntentID: intent.ID, Status: intent.Status})
}

// GetStatus re-reads the intent from the processor, owner or admin only.
//
// @Summary      Get payment status for an order
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  paymentIntentResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id}/payment [get]
func (h *PaymentHandler) GetStatus(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "order", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "order", res)
	}

	intent, err := h.paymentService.RefreshStatus(c.Request().Context(), res.Resource.(*domain.Order))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{IntentID: intent.ID, Status: intent.Status})
}

// Webhook accepts a processor notification and queues it. The 202 only
// acknowledges receipt; the status update happens on a worker, ordered
// per order.
//
// @Summary      Receive a payment processor webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  webhookRequest  true  "Processor event"
// @Success      202
// @Failure      400  {object}  map[string]string
// @Router       /webhooks/payments [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	h.queue.Enqueue(domain.PaymentEvent{
		IntentID:  req.IntentID,
		OrderID:   req.OrderID,
		Status:    req.Status,
		Timestamp: req.Timestamp,
		Source:    req.Source,
	})
	return c.NoContent(http.StatusAccepted)
}
