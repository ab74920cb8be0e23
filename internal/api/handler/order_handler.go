package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// OrderHandler serves order placement and lifecycle endpoints. Reads and
// cancels on a specific order go through the ownership service; listing is
// scoped to the caller unless they are an admin.
type OrderHandler struct {
	orderService ports.OrderService
	orders       ports.OrderRepository
	authorizer   ports.Authorizer
}

func NewOrderHandler(orderService ports.OrderService, orders ports.OrderRepository, authorizer ports.Authorizer) *OrderHandler {
	return &OrderHandler{orderService: orderService, orders: orders, authorizer: authorizer}
}

func (h *OrderHandler) lookup(ctx context.Context, key ports.ResourceKey) (domain.Ownable, error) {
	return h.orders.FindByID(ctx, key.ResourceID)
}

type placeOrderRequest struct {
	// UserID lets an admin place an order on behalf of another user.
	UserID string `json:"user_id,omitempty"`
}

type listOrdersResponse struct {
	Data       []*domain.Order    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Place converts the effective user's cart into an order.
//
// @Summary      Place an order from the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  false  "Optional target user (admin only)"
// @Success      201   {object}  domain.Order
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ownerID, err := h.authorizer.ValidateEffectiveUser(c.Request().Context(), principal, req.UserID)
	if err != nil {
		return err
	}

	order, err := h.orderService.Place(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// List returns the caller's orders, or any user's orders for admins.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Filter by owner (admin only)"
// @Param        status   query     string  false  "Filter by order status"
// @Param        page     query     int     false  "Page number (1-based)"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  listOrdersResponse
// @Failure      401      {object}  map[string]string
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	// Non-admins only ever see their own orders regardless of the query.
	userID := principal.UserID
	if principal.IsAdmin {
		userID = c.QueryParam("user_id")
	}

	result, err := h.orderService.List(c.Request().Context(), ports.ListOrdersFilter{
		UserID: userID,
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get returns one order, owner or admin only.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
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
	return c.JSON(http.StatusOK, res.Resource)
}

// Cancel cancels a pending or paid order, owner or admin only.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
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

	order, err := h.orderService.Cancel(c.Request().Context(), res.Resource.(*domain.Order))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
