package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type OfferHandler struct {
	offers *service.OfferService
}

func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type offerRequest struct {
	Code            string  `json:"code"             validate:"required,max=32"`
	Description     string  `json:"description"`
	DiscountPercent float64 `json:"discount_percent" validate:"gt=0,lte=100"`
	MaxDiscount     float64 `json:"max_discount"     validate:"gte=0"`
	MinOrderAmount  float64 `json:"min_order_amount" validate:"gte=0"`
	MaxUses         int     `json:"max_uses"         validate:"gte=0"`
	ValidFrom       string  `json:"valid_from"`
	ValidTo         string  `json:"valid_to"`
	Active          *bool   `json:"active"`
}

func (r offerRequest) input() (ports.OfferInput, error) {
	in := ports.OfferInput{
		Code:            r.Code,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		MaxDiscount:     r.MaxDiscount,
		MinOrderAmount:  r.MinOrderAmount,
		MaxUses:         r.MaxUses,
		Active:          r.Active,
	}
	var err error
	if r.ValidFrom != "" {
		if in.ValidFrom, err = parseDay("valid_from", r.ValidFrom); err != nil {
			return in, err
		}
	}
	if r.ValidTo != "" {
		if in.ValidTo, err = parseDay("valid_to", r.ValidTo); err != nil {
			return in, err
		}
		// A bare date stays valid through the whole day.
		if !strings.Contains(r.ValidTo, "T") {
			in.ValidTo = in.ValidTo.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return in, nil
}

type validateOfferRequest struct {
	Code   string  `json:"code"   validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

// ListActive returns offers currently usable.
//
// @Summary  Active offers
// @Tags     offers
// @Produce  json
// @Success  200  {array}  domain.Offer
// @Router   /api/offers [get]
func (h *OfferHandler) ListActive(c echo.Context) error {
	offers, err := h.offers.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// ListAll returns every offer including inactive ones.
//
// @Summary   All offers
// @Tags      offers
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.Offer
// @Router    /api/offers/all [get]
func (h *OfferHandler) ListAll(c echo.Context) error {
	offers, err := h.offers.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// Create adds an offer code.
//
// @Summary   Create offer
// @Tags      offers
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     X-Outlet-Id  header  string        false  "Outlet ID"
// @Param     body         body    offerRequest  true   "Offer"
// @Success   201   {object}  domain.Offer
// @Failure   403   {object}  errorResponse
// @Failure   409   {object}  errorResponse
// @Router    /api/offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	var req offerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	o, err := h.offers.Create(c.Request().Context(), middleware.OutletFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, o)
}

// Update replaces the terms of an offer.
//
// @Summary   Update offer
// @Tags      offers
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     X-Outlet-Id  header  string        false  "Outlet ID"
// @Param     id           path    string        true   "Offer ID"
// @Param     body         body    offerRequest  true   "Offer"
// @Success   200   {object}  domain.Offer
// @Failure   403   {object}  errorResponse
// @Router    /api/offers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	var req offerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	o, err := h.offers.Update(c.Request().Context(), middleware.OutletFrom(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// Delete removes an offer.
//
// @Summary   Delete offer
// @Tags      offers
// @Security  BearerAuth
// @Param     X-Outlet-Id  header  string  false  "Outlet ID"
// @Param     id           path    string  true   "Offer ID"
// @Success   204
// @Failure   403  {object}  errorResponse
// @Router    /api/offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	if err := h.offers.Delete(c.Request().Context(), middleware.OutletFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Validate previews the discount of a code for an amount.
//
// @Summary   Validate offer code
// @Tags      offers
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      validateOfferRequest  true  "Code and amount"
// @Success   200   {object}  service.OfferPreview
// @Failure   404   {object}  errorResponse
// @Router    /api/offers/validate [post]
func (h *OfferHandler) Validate(c echo.Context) error {
	var req validateOfferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	preview, err := h.offers.Validate(c.Request().Context(), req.Code, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, preview)
}
