package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/service"
)

type LoyaltyHandler struct {
	loyalty *service.LoyaltyService
}

func NewLoyaltyHandler(loyalty *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty}
}

type redeemRequest struct {
	Points int `json:"points" validate:"gt=0"`
}

type adjustRequest struct {
	Points int    `json:"points" validate:"ne=0"`
	Reason string `json:"reason" validate:"required"`
}

type loyaltyResponse struct {
	Account      *domain.LoyaltyAccount       `json:"account"`
	Transactions []*domain.LoyaltyTransaction `json:"transactions"`
}

// Me returns the caller's points balance and recent history.
//
// @Summary   My loyalty account
// @Tags      loyalty
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  loyaltyResponse
// @Router    /api/loyalty/me [get]
func (h *LoyaltyHandler) Me(c echo.Context) error {
	return h.account(c, identity(c).UserID)
}

// Get returns a customer's loyalty account.
//
// @Summary   Customer loyalty account
// @Tags      loyalty
// @Produce   json
// @Security  BearerAuth
// @Param     userId  path  string  true  "User ID"
// @Success   200  {object}  loyaltyResponse
// @Router    /api/loyalty/{userId} [get]
func (h *LoyaltyHandler) Get(c echo.Context) error {
	return h.account(c, c.Param("userId"))
}

func (h *LoyaltyHandler) account(c echo.Context, userID string) error {
	ctx := c.Request().Context()
	acct, err := h.loyalty.Account(ctx, userID)
	if err != nil {
		return err
	}
	history, err := h.loyalty.History(ctx, userID, 50)
	if err != nil {
		return err
	}
	if history == nil {
		history = []*domain.LoyaltyTransaction{}
	}
	return c.JSON(http.StatusOK, loyaltyResponse{Account: acct, Transactions: history})
}

// Redeem spends the caller's points.
//
// @Summary   Redeem points
// @Tags      loyalty
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      redeemRequest  true  "Points"
// @Success   200   {object}  domain.LoyaltyAccount
// @Failure   409   {object}  errorResponse
// @Router    /api/loyalty/redeem [post]
func (h *LoyaltyHandler) Redeem(c echo.Context) error {
	var req redeemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acct, err := h.loyalty.Redeem(c.Request().Context(), identity(c).UserID, req.Points)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acct)
}

// Adjust credits or debits a customer's points.
//
// @Summary   Adjust points
// @Tags      loyalty
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     userId  path      string         true  "User ID"
// @Param     body    body      adjustRequest  true  "Adjustment"
// @Success   200     {object}  domain.LoyaltyAccount
// @Failure   409     {object}  errorResponse
// @Router    /api/loyalty/{userId}/adjust [post]
func (h *LoyaltyHandler) Adjust(c echo.Context) error {
	var req adjustRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acct, err := h.loyalty.Adjust(c.Request().Context(), c.Param("userId"), req.Points, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acct)
}
