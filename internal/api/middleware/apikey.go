package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// HeaderAPIKey carries an integration API key.
const HeaderAPIKey = "X-API-Key"

const apiKeyServiceKey = "api_key_service"

// KeyAuthenticator validates an integration API key.
type KeyAuthenticator interface {
	Authenticate(key string) (domain.APIKey, bool)
}

// APIKey admits requests carrying a usable X-API-Key.
func APIKey(keys KeyAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(HeaderAPIKey))
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing api key")
			}
			key, ok := keys.Authenticate(raw)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing api key")
			}
			c.Set(apiKeyServiceKey, key.ServiceName)
			return next(c)
		}
	}
}

// APIKeyServiceFrom returns the service name of the authenticated key.
func APIKeyServiceFrom(c echo.Context) string {
	v, _ := c.Get(apiKeyServiceKey).(string)
	return v
}
