package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/core/service"
)

func TestAPIKey(t *testing.T) {
	keys := service.NewAPIKeyService(24*time.Hour, time.Hour)
	key, err := keys.Generate("swiggy", "menu sync")
	require.NoError(t, err)

	e := echo.New()
	e.GET("/menu", func(c echo.Context) error {
		return c.String(http.StatusOK, APIKeyServiceFrom(c))
	}, APIKey(keys))

	for name, header := range map[string]string{"missing": "", "unknown": "cpk_nope"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/menu", nil)
			if header != "" {
				req.Header.Set(HeaderAPIKey, header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.Header.Set(HeaderAPIKey, key.Key)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "swiggy", rec.Body.String())

	got, err := keys.Get(key.Key)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.RequestCount)

	require.NoError(t, keys.Revoke(key.Key))
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/menu", nil)
	req.Header.Set(HeaderAPIKey, key.Key)
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
