package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// AuditQueue accepts audit entries without blocking.
type AuditQueue interface {
	Enqueue(entry *domain.AuditLog) bool
}

// Audit records every state-changing request once the response status is known.
func Audit(q AuditQueue) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			if err := next(c); err != nil {
				c.Error(err)
			}

			entry := &domain.AuditLog{
				ID:         uuid.NewString(),
				Action:     method + " " + c.Path(),
				Resource:   resourceOf(c.Path()),
				ResourceID: c.Param("id"),
				OutletID:   OutletFrom(c),
				IP:         c.RealIP(),
				StatusCode: c.Response().Status,
				CreatedAt:  time.Now().UTC(),
			}
			if id, ok := IdentityFrom(c); ok {
				entry.ActorID = id.UserID
				entry.ActorUsername = id.Username
			}
			q.Enqueue(entry)
			return nil
		}
	}
}

// resourceOf maps "/api/orders/:id/status" to "orders".
func resourceOf(path string) string {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || seg == "api" || strings.HasPrefix(seg, ":") {
			continue
		}
		return seg
	}
	return ""
}
