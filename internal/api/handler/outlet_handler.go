package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/service"
)

type OutletHandler struct {
	outlets *service.OutletService
}

func NewOutletHandler(outlets *service.OutletService) *OutletHandler {
	return &OutletHandler{outlets: outlets}
}

type createOutletRequest struct {
	Name    string `json:"name"    validate:"required"`
	Code    string `json:"code"    validate:"required,max=16"`
	Address string `json:"address"`
}

type updateOutletRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Active  *bool  `json:"active"`
}

// List returns all outlets.
//
// @Summary   List outlets
// @Tags      outlets
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.Outlet
// @Router    /api/outlets [get]
func (h *OutletHandler) List(c echo.Context) error {
	outlets, err := h.outlets.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outlets)
}

// Create adds an outlet.
//
// @Summary   Create outlet
// @Tags      outlets
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      createOutletRequest  true  "Outlet"
// @Success   201   {object}  domain.Outlet
// @Failure   409   {object}  errorResponse
// @Router    /api/outlets [post]
func (h *OutletHandler) Create(c echo.Context) error {
	var req createOutletRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.outlets.Create(c.Request().Context(), req.Name, req.Code, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, o)
}

// Update edits an outlet.
//
// @Summary   Update outlet
// @Tags      outlets
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string               true  "Outlet ID"
// @Param     body  body      updateOutletRequest  true  "Changes"
// @Success   200   {object}  domain.Outlet
// @Failure   404   {object}  errorResponse
// @Router    /api/outlets/{id} [put]
func (h *OutletHandler) Update(c echo.Context) error {
	var req updateOutletRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.outlets.Update(c.Request().Context(), c.Param("id"), req.Name, req.Address, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// Delete deactivates an outlet.
//
// @Summary   Deactivate outlet
// @Tags      outlets
// @Security  BearerAuth
// @Param     id  path  string  true  "Outlet ID"
// @Success   204
// @Failure   404  {object}  errorResponse
// @Router    /api/outlets/{id} [delete]
func (h *OutletHandler) Delete(c echo.Context) error {
	if err := h.outlets.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
