package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

// MenuHandler serves categories, menu items and KPT analysis.
type MenuHandler struct {
	menu *service.MenuService
}

func NewMenuHandler(menu *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

type categoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"  validate:"gte=0"`
}

func (r categoryRequest) input() ports.CategoryInput {
	return ports.CategoryInput{Name: r.Name, Description: r.Description, SortOrder: r.SortOrder}
}

type menuItemRequest struct {
	Name        string  `json:"name"         validate:"required"`
	CategoryID  string  `json:"category_id"  validate:"required"`
	Price       float64 `json:"price"        validate:"gt=0"`
	Cost        float64 `json:"cost"         validate:"gte=0"`
	Description string  `json:"description"`
	Available   *bool   `json:"available"`
	PrepMinutes int     `json:"prep_minutes" validate:"gte=0"`
}

func (r menuItemRequest) input() ports.MenuItemInput {
	return ports.MenuItemInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Cost:        r.Cost,
		Description: r.Description,
		Available:   r.Available,
		PrepMinutes: r.PrepMinutes,
	}
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ListCategories returns categories, optionally for one outlet.
//
// @Summary  List categories
// @Tags     menu
// @Produce  json
// @Param    X-Outlet-Id  header  string  false  "Outlet ID"
// @Success  200  {array}  domain.Category
// @Router   /api/categories [get]
func (h *MenuHandler) ListCategories(c echo.Context) error {
	cats, err := h.menu.ListCategories(c.Request().Context(), strings.TrimSpace(c.Request().Header.Get(middleware.HeaderOutletID)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// CreateCategory adds a category to the caller's outlet.
//
// @Summary   Create category
// @Tags      menu
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     X-Outlet-Id  header  string           false  "Outlet ID"
// @Param     body         body    categoryRequest  true   "Category"
// @Success   201  {object}  domain.Category
// @Failure   400  {object}  errorResponse
// @Router    /api/categories [post]
func (h *MenuHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, err := h.menu.CreateCategory(c.Request().Context(), middleware.OutletFrom(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory edits a category.
//
// @Summary   Update category
// @Tags      menu
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string           true  "Category ID"
// @Param     body  body      categoryRequest  true  "Category"
// @Success   200   {object}  domain.Category
// @Failure   404   {object}  errorResponse
// @Router    /api/categories/{id} [put]
func (h *MenuHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, err := h.menu.UpdateCategory(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory removes a category.
//
// @Summary   Delete category
// @Tags      menu
// @Security  BearerAuth
// @Param     id  path  string  true  "Category ID"
// @Success   204
// @Router    /api/categories/{id} [delete]
func (h *MenuHandler) DeleteCategory(c echo.Context) error {
	if err := h.menu.DeleteCategory(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListItems returns menu items; filter with category_id and available=true.
//
// @Summary  List menu items
// @Tags     menu
// @Produce  json
// @Param    X-Outlet-Id  header  string  false  "Outlet ID"
// @Param    category_id  query   string  false  "Category ID"
// @Param    available    query   bool    false  "Only available items"
// @Success  200  {array}  domain.MenuItem
// @Router   /api/menu [get]
func (h *MenuHandler) ListItems(c echo.Context) error {
	items, err := h.menu.ListItems(c.Request().Context(),
		strings.TrimSpace(c.Request().Header.Get(middleware.HeaderOutletID)),
		c.QueryParam("category_id"),
		c.QueryParam("available") == "true",
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem returns one menu item.
//
// @Summary  Get menu item
// @Tags     menu
// @Produce  json
// @Param    id  path  string  true  "Menu item ID"
// @Success  200  {object}  domain.MenuItem
// @Failure  404  {object}  errorResponse
// @Router   /api/menu/{id} [get]
func (h *MenuHandler) GetItem(c echo.Context) error {
	item, err := h.menu.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem adds a menu item.
//
// @Summary   Create menu item
// @Tags      menu
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      menuItemRequest  true  "Menu item"
// @Success   201   {object}  domain.MenuItem
// @Failure   400   {object}  errorResponse
// @Router    /api/menu [post]
func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req menuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.menu.CreateItem(c.Request().Context(), middleware.OutletFrom(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces a menu item's fields.
//
// @Summary   Update menu item
// @Tags      menu
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string           true  "Menu item ID"
// @Param     body  body      menuItemRequest  true  "Menu item"
// @Success   200   {object}  domain.MenuItem
// @Router    /api/menu/{id} [put]
func (h *MenuHandler) UpdateItem(c echo.Context) error {
	var req menuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.menu.UpdateItem(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// SetAvailability toggles whether an item can be ordered.
//
// @Summary   Set menu item availability
// @Tags      menu
// @Accept    json
// @Security  BearerAuth
// @Param     id    path  string               true  "Menu item ID"
// @Param     body  body  availabilityRequest  true  "Availability"
// @Success   204
// @Router    /api/menu/{id}/availability [patch]
func (h *MenuHandler) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.menu.SetAvailability(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), *req.Available); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteItem removes a menu item.
//
// @Summary   Delete menu item
// @Tags      menu
// @Security  BearerAuth
// @Param     id  path  string  true  "Menu item ID"
// @Success   204
// @Router    /api/menu/{id} [delete]
func (h *MenuHandler) DeleteItem(c echo.Context) error {
	if err := h.menu.DeleteItem(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Performance reports kitchen preparation time per item.
//
// @Summary   Menu KPT analysis
// @Tags      menu
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.ItemPerformance
// @Router    /api/menu/performance [get]
func (h *MenuHandler) Performance(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	perf, err := h.menu.Performance(c.Request().Context(), windowFilter(middleware.OutletFrom(c), start, end))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perf)
}

type integrationMenuResponse struct {
	Service string             `json:"service"`
	Items   []*domain.MenuItem `json:"items"`
}

// IntegrationMenu lists available items for delivery platforms holding an API key.
//
// @Summary   Menu feed for integrations
// @Tags      integrations
// @Produce   json
// @Security  ApiKeyAuth
// @Param     X-Outlet-Id  header  string  false  "Outlet ID"
// @Success   200  {object}  integrationMenuResponse
// @Failure   401  {object}  errorResponse
// @Router    /api/integrations/menu [get]
func (h *MenuHandler) IntegrationMenu(c echo.Context) error {
	items, err := h.menu.ListItems(c.Request().Context(), strings.TrimSpace(c.Request().Header.Get(middleware.HeaderOutletID)), "", true)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.MenuItem{}
	}
	return c.JSON(http.StatusOK, integrationMenuResponse{Service: middleware.APIKeyServiceFrom(c), Items: items})
}
