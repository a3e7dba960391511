package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type SaleHandler struct {
	sales *service.SaleService
}

func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

type saleItemRequest struct {
	Name      string  `json:"name"       validate:"required"`
	Quantity  float64 `json:"quantity"   validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type saleRequest struct {
	Date          string            `json:"date"           validate:"required"`
	InvoiceNo     string            `json:"invoice_no"`
	Items         []saleItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
}

// Create records a counter sale.
//
// @Summary   Record sale
// @Tags      sales
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      saleRequest  true  "Sale"
// @Success   201   {object}  domain.Sale
// @Failure   400   {object}  errorResponse
// @Router    /api/sales [post]
func (h *SaleHandler) Create(c echo.Context) error {
	var req saleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDay("date", req.Date)
	if err != nil {
		return err
	}
	in := ports.SaleInput{
		Date:          date,
		InvoiceNo:     req.InvoiceNo,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         make([]ports.SaleItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, ports.SaleItemInput{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	sale, err := h.sales.Create(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sale)
}

// List returns sales between start and end (inclusive).
//
// @Summary   List sales
// @Tags      sales
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.Sale
// @Router    /api/sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	sales, err := h.sales.List(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// Get returns one sale.
//
// @Summary   Get sale
// @Tags      sales
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "Sale ID"
// @Success   200  {object}  domain.Sale
// @Failure   404  {object}  errorResponse
// @Router    /api/sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	sale, err := h.sales.Get(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sale)
}

// Delete removes a sale.
//
// @Summary   Delete sale
// @Tags      sales
// @Security  BearerAuth
// @Param     id  path  string  true  "Sale ID"
// @Success   204
// @Failure   404  {object}  errorResponse
// @Router    /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c echo.Context) error {
	if err := h.sales.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Import loads sales from a CSV or XLSX upload.
//
// @Summary   Import sales
// @Tags      sales
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "CSV or XLSX file"
// @Success   200   {object}  ports.ImportSummary
// @Failure   400   {object}  errorResponse
// @Router    /api/sales/import [post]
func (h *SaleHandler) Import(c echo.Context) error {
	return runImport(c, h.sales.Import)
}

// DailyIncome merges counter sales, online payouts and expenses per day.
//
// @Summary   Daily income
// @Tags      sales
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.DailyIncome
// @Router    /api/sales/daily-income [get]
func (h *SaleHandler) DailyIncome(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	days, err := h.sales.DailyIncome(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, days)
}
