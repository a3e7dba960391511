package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type ingredientRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Unit         string  `json:"unit"          validate:"required"`
	Quantity     float64 `json:"quantity"      validate:"gte=0"`
	ReorderLevel float64 `json:"reorder_level" validate:"gte=0"`
	CostPerUnit  float64 `json:"cost_per_unit" validate:"gte=0"`
}

func (r ingredientRequest) input() ports.IngredientInput {
	return ports.IngredientInput{
		Name:         r.Name,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		CostPerUnit:  r.CostPerUnit,
	}
}

type stockMovementRequest struct {
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Reason   string  `json:"reason"`
}

// List returns ingredients of the outlet.
//
// @Summary   List inventory
// @Tags      inventory
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.Ingredient
// @Router    /api/inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.inventory.List(c.Request().Context(), middleware.OutletFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// LowStock returns ingredients at or below their reorder level.
//
// @Summary   Low stock ingredients
// @Tags      inventory
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.Ingredient
// @Router    /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c echo.Context) error {
	items, err := h.inventory.LowStock(c.Request().Context(), middleware.OutletFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create adds an ingredient.
//
// @Summary   Create ingredient
// @Tags      inventory
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      ingredientRequest  true  "Ingredient"
// @Success   201   {object}  domain.Ingredient
// @Router    /api/inventory [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	var req ingredientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ing, err := h.inventory.Create(c.Request().Context(), middleware.OutletFrom(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ing)
}

// Update edits an ingredient; quantity only changes through stock movements.
//
// @Summary   Update ingredient
// @Tags      inventory
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string             true  "Ingredient ID"
// @Param     body  body      ingredientRequest  true  "Ingredient"
// @Success   200   {object}  domain.Ingredient
// @Router    /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	var req ingredientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ing, err := h.inventory.Update(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ing)
}

// Delete removes an ingredient.
//
// @Summary   Delete ingredient
// @Tags      inventory
// @Security  BearerAuth
// @Param     id  path  string  true  "Ingredient ID"
// @Success   204
// @Router    /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	if err := h.inventory.Delete(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StockIn adds stock.
//
// @Summary   Stock in
// @Tags      inventory
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                true  "Ingredient ID"
// @Param     body  body      stockMovementRequest  true  "Movement"
// @Success   200   {object}  domain.Ingredient
// @Router    /api/inventory/{id}/stock-in [post]
func (h *InventoryHandler) StockIn(c echo.Context) error {
	return h.move(c, h.inventory.StockIn)
}

// StockOut removes stock; it never drives the quantity below zero.
//
// @Summary   Stock out
// @Tags      inventory
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                true  "Ingredient ID"
// @Param     body  body      stockMovementRequest  true  "Movement"
// @Success   200   {object}  domain.Ingredient
// @Failure   409   {object}  errorResponse
// @Router    /api/inventory/{id}/stock-out [post]
func (h *InventoryHandler) StockOut(c echo.Context) error {
	return h.move(c, h.inventory.StockOut)
}

type movement func(ctx context.Context, outletID, id, actor string, in ports.StockMovementInput) (*domain.Ingredient, error)

func (h *InventoryHandler) move(c echo.Context, apply movement) error {
	var req stockMovementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ing, err := apply(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), identity(c).Username,
		ports.StockMovementInput{Quantity: req.Quantity, Reason: req.Reason})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ing)
}

// Transactions lists stock movements of an ingredient, newest first.
//
// @Summary   Stock transactions
// @Tags      inventory
// @Produce   json
// @Security  BearerAuth
// @Param     id     path   string  true   "Ingredient ID"
// @Param     limit  query  int     false  "Max entries"
// @Success   200  {array}  domain.StockTransaction
// @Router    /api/inventory/{id}/transactions [get]
func (h *InventoryHandler) Transactions(c echo.Context) error {
	limit, err := intQuery(c, "limit", 100)
	if err != nil {
		return err
	}
	txs, err := h.inventory.Transactions(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}
