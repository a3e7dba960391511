package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

// OnlineSaleHandler covers delivery platform orders and their reconciliation.
type OnlineSaleHandler struct {
	online *service.OnlineSaleService
}

func NewOnlineSaleHandler(online *service.OnlineSaleService) *OnlineSaleHandler {
	return &OnlineSaleHandler{online: online}
}

type onlineOrderRequest struct {
	Platform          string  `json:"platform"           validate:"required"`
	PlatformOrderID   string  `json:"platform_order_id"  validate:"required"`
	Date              string  `json:"date"               validate:"required"`
	GrossAmount       float64 `json:"gross_amount"       validate:"gt=0"`
	DiscountPercent   float64 `json:"discount_percent"   validate:"gte=0,lte=100"`
	CommissionPercent float64 `json:"commission_percent" validate:"gte=0,lte=100"`
}

type onlineStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending settled disputed"`
}

// Create records a platform order and computes its payout.
//
// @Summary   Record online order
// @Tags      online-sales
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      onlineOrderRequest  true  "Online order"
// @Success   201   {object}  domain.OnlineOrder
// @Router    /api/online-sales [post]
func (h *OnlineSaleHandler) Create(c echo.Context) error {
	var req onlineOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDay("date", req.Date)
	if err != nil {
		return err
	}
	o, err := h.online.Create(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, ports.OnlineOrderInput{
		Platform:          req.Platform,
		PlatformOrderID:   req.PlatformOrderID,
		Date:              date,
		GrossAmount:       req.GrossAmount,
		DiscountPercent:   req.DiscountPercent,
		CommissionPercent: req.CommissionPercent,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, o)
}

// List returns platform orders, optionally for one platform.
//
// @Summary   List online orders
// @Tags      online-sales
// @Produce   json
// @Security  BearerAuth
// @Param     start     query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end       query  string  false  "End date (YYYY-MM-DD)"
// @Param     platform  query  string  false  "zomato, swiggy or other"
// @Success   200  {array}  domain.OnlineOrder
// @Router    /api/online-sales [get]
func (h *OnlineSaleHandler) List(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	list, err := h.online.List(c.Request().Context(), middleware.OutletFrom(c), start, end, c.QueryParam("platform"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// SetStatus marks a platform order settled or disputed.
//
// @Summary   Update online order status
// @Tags      online-sales
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string               true  "Online order ID"
// @Param     body  body      onlineStatusRequest  true  "Status"
// @Success   200   {object}  domain.OnlineOrder
// @Router    /api/online-sales/{id}/status [put]
func (h *OnlineSaleHandler) SetStatus(c echo.Context) error {
	var req onlineStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.online.SetStatus(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// Import loads platform orders from a CSV or XLSX upload.
//
// @Summary   Import online orders
// @Tags      online-sales
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "CSV or XLSX file"
// @Success   200   {object}  ports.ImportSummary
// @Router    /api/online-sales/import [post]
func (h *OnlineSaleHandler) Import(c echo.Context) error {
	return runImport(c, h.online.Import)
}

// Reconciliation summarizes gross, deductions and payout per platform.
//
// @Summary   Platform reconciliation
// @Tags      online-sales
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.PlatformSummary
// @Router    /api/online-sales/reconciliation [get]
func (h *OnlineSaleHandler) Reconciliation(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	summary, err := h.online.Reconciliation(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
