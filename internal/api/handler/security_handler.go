package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/service"
)

// SecurityHandler exposes CSRF tokens, API keys and the audit trail to admins.
type SecurityHandler struct {
	csrf  *service.CSRFService
	keys  *service.APIKeyService
	audit *service.AuditService
}

func NewSecurityHandler(csrf *service.CSRFService, keys *service.APIKeyService, audit *service.AuditService) *SecurityHandler {
	return &SecurityHandler{csrf: csrf, keys: keys, audit: audit}
}

type validateCSRFRequest struct {
	Token  string `json:"token"   validate:"required"`
	UserID string `json:"user_id"`
}

type validateCSRFResponse struct {
	Valid bool `json:"valid"`
}

type createAPIKeyRequest struct {
	ServiceName string `json:"service_name" validate:"required"`
	Description string `json:"description"`
}

type rotateAPIKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

type revokeAPIKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

type rotateAPIKeyResponse struct {
	Key            domain.APIKey `json:"key"`
	OldKeyValidTil time.Time     `json:"old_key_valid_until"`
}

// IssueCSRF returns a fresh CSRF token bound to the caller.
//
// @Summary   Issue CSRF token
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   201  {object}  domain.CSRFToken
// @Router    /api/admin/csrf-tokens [post]
func (h *SecurityHandler) IssueCSRF(c echo.Context) error {
	tok, err := h.csrf.Issue(identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tok)
}

// ValidateCSRF checks a token against its owner, the caller by default.
//
// @Summary   Validate CSRF token
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      validateCSRFRequest  true  "Token"
// @Success   200   {object}  validateCSRFResponse
// @Router    /api/admin/csrf-tokens/validate [post]
func (h *SecurityHandler) ValidateCSRF(c echo.Context) error {
	var req validateCSRFRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	owner := req.UserID
	if owner == "" {
		owner = identity(c).UserID
	}
	return c.JSON(http.StatusOK, validateCSRFResponse{Valid: h.csrf.Validate(req.Token, owner)})
}

// CreateAPIKey generates a key for an integration.
//
// @Summary   Create API key
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      createAPIKeyRequest  true  "Service"
// @Success   201   {object}  domain.APIKey
// @Router    /api/admin/api-keys [post]
func (h *SecurityHandler) CreateAPIKey(c echo.Context) error {
	var req createAPIKeyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	key, err := h.keys.Generate(req.ServiceName, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, key)
}

// ListAPIKeys returns all keys.
//
// @Summary   List API keys
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}  domain.APIKey
// @Router    /api/admin/api-keys [get]
func (h *SecurityHandler) ListAPIKeys(c echo.Context) error {
	return c.JSON(http.StatusOK, h.keys.List())
}

// RotateAPIKey replaces a key; the old one keeps working through the grace window.
//
// @Summary   Rotate API key
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      rotateAPIKeyRequest  true  "Key to rotate"
// @Success   201   {object}  rotateAPIKeyResponse
// @Failure   404   {object}  errorResponse
// @Failure   409   {object}  errorResponse
// @Router    /api/admin/api-keys/rotate [post]
func (h *SecurityHandler) RotateAPIKey(c echo.Context) error {
	var req rotateAPIKeyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	key, until, err := h.keys.Rotate(req.Key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rotateAPIKeyResponse{Key: key, OldKeyValidTil: until})
}

// RevokeAPIKey deactivates a key immediately. The key travels in the body
// so it never lands in access logs.
//
// @Summary   Revoke API key
// @Tags      admin
// @Accept    json
// @Security  BearerAuth
// @Param     body  body  revokeAPIKeyRequest  true  "Key to revoke"
// @Success   204
// @Failure   404  {object}  errorResponse
// @Router    /api/admin/api-keys/revoke [post]
func (h *SecurityHandler) RevokeAPIKey(c echo.Context) error {
	var req revokeAPIKeyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.keys.Revoke(req.Key); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RotationDue lists active keys expiring within the given number of days.
//
// @Summary   Keys needing rotation
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     days  query  int  false  "Window in days (default 7)"
// @Success   200  {array}  domain.APIKey
// @Router    /api/admin/api-keys/rotation-due [get]
func (h *SecurityHandler) RotationDue(c echo.Context) error {
	days, err := intQuery(c, "days", 7)
	if err != nil {
		return err
	}
	due := h.keys.KeysNeedingRotation(time.Duration(days) * 24 * time.Hour)
	if due == nil {
		due = []domain.APIKey{}
	}
	return c.JSON(http.StatusOK, due)
}

// AuditLogs returns the most recent audit entries.
//
// @Summary   Audit trail
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     limit  query  int  false  "Max entries (default 100, max 1000)"
// @Success   200  {array}  domain.AuditLog
// @Router    /api/admin/audit-logs [get]
func (h *SecurityHandler) AuditLogs(c echo.Context) error {
	limit, err := intQuery(c, "limit", 100)
	if err != nil {
		return err
	}
	logs, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
