package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/metrics"
	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity"     validate:"gt=0"`
}

type createOrderRequest struct {
	Items     []orderLineRequest `json:"items"      validate:"required,min=1,dive"`
	OfferCode string             `json:"offer_code"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready completed cancelled"`
}

// Create places an order at the resolved outlet.
//
// @Summary   Place order
// @Tags      orders
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     X-Outlet-Id  header  string              false  "Outlet ID"
// @Param     body         body    createOrderRequest  true   "Order"
// @Success   201  {object}  domain.Order
// @Failure   400  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Failure   409  {object}  errorResponse
// @Router    /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := ports.CreateOrderInput{OfferCode: req.OfferCode, Items: make([]ports.OrderLineInput, 0, len(req.Items))}
	for _, l := range req.Items {
		in.Items = append(in.Items, ports.OrderLineInput{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}

	o, err := h.orders.Create(c.Request().Context(), identity(c), middleware.OutletFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, o)
}

// Mine lists the caller's orders, newest first.
//
// @Summary   My orders
// @Tags      orders
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.Order
// @Router    /api/orders/my [get]
func (h *OrderHandler) Mine(c echo.Context) error {
	orders, err := h.orders.ListMine(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// List returns outlet orders for staff.
//
// @Summary   List orders
// @Tags      orders
// @Produce   json
// @Security  BearerAuth
// @Param     status  query  string  false  "Status filter"
// @Param     start   query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end     query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.Order
// @Router    /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.List(c.Request().Context(), windowFilter(middleware.OutletFrom(c), start, end), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order to its owner or to staff.
//
// @Summary   Get order
// @Tags      orders
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "Order ID"
// @Success   200  {object}  domain.Order
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.orders.Get(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateStatus moves an order along its lifecycle.
//
// @Summary   Update order status
// @Tags      orders
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string              true  "Order ID"
// @Param     body  body      orderStatusRequest  true  "New status"
// @Success   200   {object}  domain.Order
// @Failure   409   {object}  errorResponse
// @Router    /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.orders.UpdateStatus(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status)).Inc()
	return c.JSON(http.StatusOK, o)
}
