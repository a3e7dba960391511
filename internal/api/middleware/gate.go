package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// Capability is the access level a route requires.
type Capability int

const (
	Anonymous Capability = iota
	Authenticated
	Admin
	AdminOrManager
)

func (c Capability) String() string {
	switch c {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	case AdminOrManager:
		return "admin_or_manager"
	default:
		return "unknown"
	}
}

var (
	errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
	errInsufficient    = echo.NewHTTPError(http.StatusForbidden, "insufficient role")
)

// Gate authorizes requests against a capability. Every authentication failure
// produces the same 401 so callers cannot tell an expired token from a forged one.
type Gate struct {
	tokens TokenValidator
	users  ports.UserRepository
}

func NewGate(tokens TokenValidator, users ports.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Check evaluates the request. A non-nil *echo.HTTPError carries the status
// and body to send.
func (g *Gate) Check(c echo.Context, capability Capability) (bool, domain.Identity, *echo.HTTPError) {
	if capability == Anonymous {
		return true, domain.Identity{}, nil
	}

	token, ok := bearerToken(c)
	if !ok {
		return false, domain.Identity{}, errUnauthenticated
	}
	id, err := g.tokens.Validate(token)
	if err != nil {
		return false, domain.Identity{}, errUnauthenticated
	}

	user, err := g.users.FindByID(c.Request().Context(), id.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, domain.Identity{}, errUnauthenticated
		}
		return false, domain.Identity{}, echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
	if !user.Active {
		return false, domain.Identity{}, errUnauthenticated
	}

	switch capability {
	case Admin:
		if !id.IsAdmin() {
			return false, id, errInsufficient
		}
	case AdminOrManager:
		if !id.IsStaff() {
			return false, id, errInsufficient
		}
	}
	return true, id, nil
}

// Require rejects requests that do not hold capability and stores the caller
// identity for downstream handlers.
func Require(g *Gate, capability Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, id, herr := g.Check(c, capability)
			if !ok {
				return herr
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}
