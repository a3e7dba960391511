package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

const identityKey = "identity"

// TokenValidator turns a bearer token into the caller identity.
type TokenValidator interface {
	Validate(token string) (domain.Identity, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c echo.Context) (string, bool) {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// IdentityFrom returns the identity stored by Require.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok && id.UserID != ""
}
