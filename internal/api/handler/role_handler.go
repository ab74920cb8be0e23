package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/ports"
)

// RoleHandler serves the admin-only role registry and grant endpoints.
// All routes are behind RequireAdmin; the handler itself performs no role
// checks.
type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type grantRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Create registers a new role name.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role name (lowercase, 3-20 chars)"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// List returns every registered role.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Role
// @Failure      403  {object}  map[string]string
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Delete removes a role from the registry. Deletion is refused while any
// user still holds the role.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.roleService.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Grant assigns a role to a user.
//
// @Summary      Grant a role to a user
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      grantRoleRequest  true  "Role to grant"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id}/roles [post]
func (h *RoleHandler) Grant(c echo.Context) error {
	var req grantRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.roleService.Grant(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Revoke removes a role from a user. Removing the last role is refused.
//
// @Summary      Revoke a role from a user
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "User id"
// @Param        name  path  string  true  "Role name"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/users/{id}/roles/{name} [delete]
func (h *RoleHandler) Revoke(c echo.Context) error {
	if err := h.roleService.Revoke(c.Request().Context(), c.Param("id"), c.Param("name")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
