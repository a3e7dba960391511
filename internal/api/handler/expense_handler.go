package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseRequest struct {
	Date          string  `json:"date"        validate:"required"`
	Type          string  `json:"type"        validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Amount        float64 `json:"amount"      validate:"gt=0"`
	Vendor        string  `json:"vendor"`
	PaymentMethod string  `json:"payment_method"`
	InvoiceNo     string  `json:"invoice_no"`
	Notes         string  `json:"notes"`
}

func (r expenseRequest) input() (ports.ExpenseInput, error) {
	date, err := parseDay("date", r.Date)
	if err != nil {
		return ports.ExpenseInput{}, err
	}
	return ports.ExpenseInput{
		Date:          date,
		Type:          r.Type,
		Description:   r.Description,
		Amount:        r.Amount,
		Vendor:        r.Vendor,
		PaymentMethod: r.PaymentMethod,
		InvoiceNo:     r.InvoiceNo,
		Notes:         r.Notes,
	}, nil
}

// Create records an expense.
//
// @Summary   Record expense
// @Tags      expenses
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      expenseRequest  true  "Expense"
// @Success   201   {object}  domain.Expense
// @Router    /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req expenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	e, err := h.expenses.Create(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// List returns expenses between start and end.
//
// @Summary   List expenses
// @Tags      expenses
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.Expense
// @Router    /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	list, err := h.expenses.List(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Update replaces an expense.
//
// @Summary   Update expense
// @Tags      expenses
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string          true  "Expense ID"
// @Param     body  body      expenseRequest  true  "Expense"
// @Success   200   {object}  domain.Expense
// @Router    /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	var req expenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	e, err := h.expenses.Update(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an expense.
//
// @Summary   Delete expense
// @Tags      expenses
// @Security  BearerAuth
// @Param     id  path  string  true  "Expense ID"
// @Success   204
// @Router    /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	if err := h.expenses.Delete(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Import loads expenses from a CSV or XLSX upload.
//
// @Summary   Import expenses
// @Tags      expenses
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "CSV or XLSX file"
// @Success   200   {object}  ports.ImportSummary
// @Router    /api/expenses/import [post]
func (h *ExpenseHandler) Import(c echo.Context) error {
	return runImport(c, h.expenses.Import)
}

// Template downloads an empty expense import sheet.
//
// @Summary   Expense import template
// @Tags      expenses
// @Produce   octet-stream
// @Security  BearerAuth
// @Param     format  query  string  false  "csv or xlsx"  Enums(csv, xlsx)
// @Success   200
// @Router    /api/expenses/template [get]
func (h *ExpenseHandler) Template(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	data, filename, err := h.expenses.Template(format)
	if err != nil {
		return err
	}
	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}

// Summary totals expenses by type.
//
// @Summary   Expense summary
// @Tags      expenses
// @Produce   json
// @Security  BearerAuth
// @Param     start  query  string  false  "Start date (YYYY-MM-DD)"
// @Param     end    query  string  false  "End date (YYYY-MM-DD)"
// @Success   200  {array}  domain.TypeTotal
// @Router    /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c echo.Context) error {
	start, end, err := rangeQuery(c)
	if err != nil {
		return err
	}
	totals, err := h.expenses.Summary(c.Request().Context(), middleware.OutletFrom(c), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totals)
}
