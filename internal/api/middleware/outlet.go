package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// HeaderOutletID selects the outlet a request operates on.
const HeaderOutletID = "X-Outlet-Id"

const outletKey = "outlet_id"

// OutletScope resolves the outlet of a request for the caller.
type OutletScope interface {
	ResolveForRead(ctx context.Context, header string, id domain.Identity) (string, error)
	ResolveForWrite(ctx context.Context, header string, id domain.Identity) (string, error)
	ResolveForOrder(ctx context.Context, header string, id domain.Identity) (string, error)
}

type resolveFunc func(ctx context.Context, header string, id domain.Identity) (string, error)

func outlet(resolve resolveFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return errUnauthenticated
			}
			outletID, err := resolve(c.Request().Context(), c.Request().Header.Get(HeaderOutletID), id)
			if err != nil {
				return err
			}
			c.Set(outletKey, outletID)
			return next(c)
		}
	}
}

// OutletRead stores the outlet a read is filtered by. An empty value means
// all outlets.
func OutletRead(s OutletScope) echo.MiddlewareFunc { return outlet(s.ResolveForRead) }

// OutletWrite stores the single outlet a write targets.
func OutletWrite(s OutletScope) echo.MiddlewareFunc { return outlet(s.ResolveForWrite) }

// OutletOrder stores the outlet a customer order is placed at.
func OutletOrder(s OutletScope) echo.MiddlewareFunc { return outlet(s.ResolveForOrder) }

// OutletFrom returns the outlet stored by the outlet middleware.
func OutletFrom(c echo.Context) string {
	v, _ := c.Get(outletKey).(string)
	return v
}
