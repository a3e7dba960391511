package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/service"
)

// UserHandler exposes admin user management.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user manager admin"`
}

type setOutletsRequest struct {
	OutletIDs []string `json:"outlet_ids" validate:"required,dive,required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// List returns every user.
//
// @Summary   List users
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   domain.User
// @Failure   403  {object}  errorResponse
// @Router    /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetRole changes a user's role.
//
// @Summary   Set user role
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string          true  "User ID"
// @Param     body  body      setRoleRequest  true  "Role"
// @Success   200   {object}  domain.User
// @Failure   400   {object}  errorResponse
// @Failure   404   {object}  errorResponse
// @Router    /api/users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetOutlets replaces the outlets a user is assigned to.
//
// @Summary   Assign outlets
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string             true  "User ID"
// @Param     body  body      setOutletsRequest  true  "Outlet IDs"
// @Success   200   {object}  domain.User
// @Failure   404   {object}  errorResponse
// @Router    /api/users/{id}/outlets [put]
func (h *UserHandler) SetOutlets(c echo.Context) error {
	var req setOutletsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.SetOutlets(c.Request().Context(), c.Param("id"), req.OutletIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetActive activates or deactivates a user. Deactivated users fail the role gate.
//
// @Summary   Activate or deactivate a user
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string            true  "User ID"
// @Param     body  body      setActiveRequest  true  "Active flag"
// @Success   200   {object}  domain.User
// @Router    /api/users/{id}/active [put]
func (h *UserHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.SetActive(c.Request().Context(), c.Param("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
