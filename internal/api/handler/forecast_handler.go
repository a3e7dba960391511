package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type ForecastHandler struct {
	forecasts *service.ForecastService
}

func NewForecastHandler(forecasts *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

type ingredientCostRequest struct {
	Name     string  `json:"name"      validate:"required"`
	Quantity float64 `json:"quantity"  validate:"gt=0"`
	UnitCost float64 `json:"unit_cost" validate:"gte=0"`
}

type forecastRequest struct {
	MenuItemID      string                  `json:"menu_item_id"`
	ItemName        string                  `json:"item_name"`
	IngredientCosts []ingredientCostRequest `json:"ingredient_costs"  validate:"dive"`
	OverheadPerUnit float64                 `json:"overhead_per_unit" validate:"gte=0"`
	SellingPrice    float64                 `json:"selling_price"     validate:"gte=0"`
	ExpectedUnits   int                     `json:"expected_units"    validate:"gte=0"`
}

// Create computes and stores a price forecast.
//
// @Summary   Create price forecast
// @Tags      forecasts
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      forecastRequest  true  "Forecast inputs"
// @Success   201   {object}  domain.PriceForecast
// @Failure   400   {object}  errorResponse
// @Router    /api/forecasts [post]
func (h *ForecastHandler) Create(c echo.Context) error {
	var req forecastRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := ports.ForecastInput{
		MenuItemID:      req.MenuItemID,
		ItemName:        req.ItemName,
		OverheadPerUnit: req.OverheadPerUnit,
		SellingPrice:    req.SellingPrice,
		ExpectedUnits:   req.ExpectedUnits,
	}
	for _, ic := range req.IngredientCosts {
		in.IngredientCosts = append(in.IngredientCosts, ports.IngredientCostInput{Name: ic.Name, Quantity: ic.Quantity, UnitCost: ic.UnitCost})
	}
	f, err := h.forecasts.Create(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

// List returns stored forecasts.
//
// @Summary   List price forecasts
// @Tags      forecasts
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.PriceForecast
// @Router    /api/forecasts [get]
func (h *ForecastHandler) List(c echo.Context) error {
	list, err := h.forecasts.List(c.Request().Context(), middleware.OutletFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one forecast.
//
// @Summary   Get price forecast
// @Tags      forecasts
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "Forecast ID"
// @Success   200  {object}  domain.PriceForecast
// @Router    /api/forecasts/{id} [get]
func (h *ForecastHandler) Get(c echo.Context) error {
	f, err := h.forecasts.Get(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Delete removes a forecast.
//
// @Summary   Delete price forecast
// @Tags      forecasts
// @Security  BearerAuth
// @Param     id  path  string  true  "Forecast ID"
// @Success   204
// @Router    /api/forecasts/{id} [delete]
func (h *ForecastHandler) Delete(c echo.Context) error {
	if err := h.forecasts.Delete(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
