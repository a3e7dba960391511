package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

func TestAudit_RecordsMutations(t *testing.T) {
	q := &stubAuditQueue{}
	e := echo.New()
	e.Use(Audit(q))
	e.PUT("/api/orders/:id/status", func(c echo.Context) error {
		c.Set(identityKey, domain.Identity{UserID: "m1", Username: "mgr", Role: domain.RoleManager})
		c.Set(outletKey, "o1")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/orders", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/orders/abc/status", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Len(t, q.entries, 1)
	entry := q.entries[0]
	assert.Equal(t, "PUT /api/orders/:id/status", entry.Action)
	assert.Equal(t, "orders", entry.Resource)
	assert.Equal(t, "abc", entry.ResourceID)
	assert.Equal(t, "m1", entry.ActorID)
	assert.Equal(t, "o1", entry.OutletID)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
}

func TestAudit_CapturesErrorStatus(t *testing.T) {
	q := &stubAuditQueue{}
	e := echo.New()
	e.Use(Audit(q))
	e.DELETE("/api/sales/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	})
	e.POST("/api/boom", func(c echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/sales/s1", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/boom", nil))

	require.Len(t, q.entries, 2)
	assert.Equal(t, http.StatusForbidden, q.entries[0].StatusCode)
	assert.Empty(t, q.entries[0].ActorID)
	assert.Equal(t, http.StatusInternalServerError, q.entries[1].StatusCode)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "inventory", resourceOf("/api/inventory/:id/stock-in"))
	assert.Equal(t, "auth", resourceOf("/api/auth/login"))
	assert.Equal(t, "", resourceOf("/"))
}
