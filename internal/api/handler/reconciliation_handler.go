package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type ReconciliationHandler struct {
	recons *service.ReconciliationService
}

func NewReconciliationHandler(recons *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{recons: recons}
}

type reconciliationRequest struct {
	Date         string  `json:"date"          validate:"required"`
	OpeningCash  float64 `json:"opening_cash"  validate:"gte=0"`
	CashSales    float64 `json:"cash_sales"    validate:"gte=0"`
	CountedCash  float64 `json:"counted_cash"  validate:"gte=0"`
	Coins        float64 `json:"coins"         validate:"gte=0"`
	OnlineIncome float64 `json:"online_income" validate:"gte=0"`
	Notes        string  `json:"notes"`
}

// Create records the cash count of one day.
//
// @Summary   Record cash reconciliation
// @Tags      reconciliations
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      reconciliationRequest  true  "Cash count"
// @Success   201   {object}  domain.CashReconciliation
// @Failure   409   {object}  errorResponse
// @Router    /api/reconciliations [post]
func (h *ReconciliationHandler) Create(c echo.Context) error {
	var req reconciliationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDay("date", req.Date)
	if err != nil {
		return err
	}
	r, err := h.recons.Create(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, ports.ReconciliationInput{
		Date:         date,
		OpeningCash:  req.OpeningCash,
		CashSales:    req.CashSales,
		CountedCash:  req.CountedCash,
		Coins:        req.Coins,
		OnlineIncome: req.OnlineIncome,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// List returns reconciliations between start and end.
//
// @Summary   List cash reconciliations
// @Tags      reconciliations
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.CashReconciliation
// @Router    /api/reconciliations [get]
func (h *ReconciliationHandler) List(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	list, err := h.recons.List(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one reconciliation.
//
// @Summary   Get cash reconciliation
// @Tags      reconciliations
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "Reconciliation ID"
// @Success   200  {object}  domain.CashReconciliation
// @Router    /api/reconciliations/{id} [get]
func (h *ReconciliationHandler) Get(c echo.Context) error {
	r, err := h.recons.Get(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Import loads cash counts from a CSV or XLSX upload.
//
// @Summary   Import cash reconciliations
// @Tags      reconciliations
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "CSV or XLSX file"
// @Success   200   {object}  ports.ImportSummary
// @Router    /api/reconciliations/import [post]
func (h *ReconciliationHandler) Import(c echo.Context) error {
	return runImport(c, h.recons.Import)
}
