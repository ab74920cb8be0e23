package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// AddressHandler serves shipping-address endpoints. Every route is scoped to
// the owner; per-address routes go through the ownership service.
type AddressHandler struct {
	addressService ports.AddressService
	addresses      ports.AddressRepository
	authorizer     ports.Authorizer
}

func NewAddressHandler(addressService ports.AddressService, addresses ports.AddressRepository, authorizer ports.Authorizer) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		addresses:      addresses,
		authorizer:     authorizer,
	}
}

func (h *AddressHandler) lookup(ctx context.Context, key ports.ResourceKey) (domain.Ownable, error) {
	return h.addresses.FindByID(ctx, key.ResourceID)
}

type addressRequest struct {
	Label   string `json:"label" validate:"max=50"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
	// UserID lets an admin manage another user's address book.
	UserID string `json:"user_id,omitempty"`
}

// List returns the caller's address book.
//
// @Summary      List my addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ShippingAddress
// @Failure      401  {object}  map[string]string
// @Router       /v1/addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	addrs, err := h.addressService.ListByUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addrs)
}

// Create stores a new address for the effective user.
//
// @Summary      Create an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addressRequest  true  "Address fields"
// @Success      201   {object}  domain.ShippingAddress
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/addresses [post]
func (h *AddressHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID, err := h.authorizer.ValidateEffectiveUser(c.Request().Context(), principal, req.UserID)
	if err != nil {
		return err
	}

	addr, err := h.addressService.Create(c.Request().Context(), ports.AddressInput{
		OwnerUserID: ownerID,
		Label:       req.Label,
		Street:      req.Street,
		City:        req.City,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addr)
}

// Update replaces an address's fields, owner or admin only.
//
// @Summary      Update an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Address id"
// @Param        body  body      addressRequest  true  "Address fields"
// @Success      200   {object}  domain.ShippingAddress
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/addresses/{id} [put]
func (h *AddressHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "address", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "address", res)
	}

	addr := res.Resource.(*domain.ShippingAddress)
	updated, err := h.addressService.Update(c.Request().Context(), addr, ports.AddressInput{
		OwnerUserID: addr.UserID,
		Label:       req.Label,
		Street:      req.Street,
		City:        req.City,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an address, owner or admin only. The default address is
// protected while other addresses remain.
//
// @Summary      Delete an address
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Address id"
// @Success      200  {object}  adminDeleteResponse
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/addresses/{id} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "address", ports.VerifyOptions{
		ResourceID:          c.Param("id"),
		Lookup:              h.lookup,
		IncludeOwnerProfile: true,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "address", res)
	}

	addr := res.Resource.(*domain.ShippingAddress)
	if err := h.addressService.Delete(c.Request().Context(), addr); err != nil {
		return err
	}

	// An admin removing someone else's address gets an audit-style payload
	// naming whose address was removed.
	if res.IsAdmin && !res.IsOwner && res.OwnerProfile != nil {
		return c.JSON(http.StatusOK, adminDeleteResponse{
			Deleted:    addr.ID,
			OwnerID:    res.OwnerProfile.ID,
			OwnerEmail: res.OwnerProfile.Email,
		})
	}
	return c.NoContent(http.StatusNoContent)
}

type adminDeleteResponse struct {
	Deleted    string `json:"deleted"`
	OwnerID    string `json:"owner_id"`
	OwnerEmail string `json:"owner_email"`
}

// SetDefault makes an address the user's default, owner or admin only.
//
// @Summary      Set an address as default
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Address id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	res, err := h.authorizer.VerifyOwnership(c.Request().Context(), principal.UserID, "address", ports.VerifyOptions{
		ResourceID: c.Param("id"),
		Lookup:     h.lookup,
	})
	if err != nil {
		return err
	}
	if !res.Authorized {
		return denied(c, "address", res)
	}

	if err := h.addressService.SetDefault(c.Request().Context(), res.Resource.(*domain.ShippingAddress)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
