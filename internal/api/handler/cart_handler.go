package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/ports"
)

// CartHandler serves the authenticated user's cart. Carts are addressed by
// owner only, so every route acts on the principal's own cart and no
// ownership check is needed.
type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Get returns the caller's cart, empty if none exists yet.
//
// @Summary      Get my cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Cart
// @Failure      401  {object}  map[string]string
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	cart, err := h.cartService.Get(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the caller's cart, merging existing lines.
//
// @Summary      Add an item to my cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cartItemRequest  true  "Product and quantity"
// @Success      200   {object}  domain.Cart
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cartService.AddItem(c.Request().Context(), principal.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateItem sets a line quantity; zero removes the line.
//
// @Summary      Update a cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string                 true  "Product id"
// @Param        body       body      updateCartItemRequest  true  "New quantity (0 removes)"
// @Success      200        {object}  domain.Cart
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cartService.UpdateItem(c.Request().Context(), principal.UserID, c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes a line from the caller's cart.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  domain.Cart
// @Failure      404        {object}  map[string]string
// @Router       /v1/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	cart, err := h.cartService.RemoveItem(c.Request().Context(), principal.UserID, c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Clear empties the caller's cart.
//
// @Summary      Clear my cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.cartService.Clear(c.Request().Context(), principal.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
