package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("name is required"), http.StatusBadRequest, "name is required"},
		{"outlet required", domain.ErrOutletRequired, http.StatusBadRequest, "outlet is required"},
		{"token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid or missing token"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"outlet forbidden", domain.ErrOutletForbidden, http.StatusForbidden, "outlet access denied"},
		{"not found wrapped", fmt.Errorf("load: %w", domain.ErrOrderNotFound), http.StatusNotFound, "load: order not found"},
		{"stock", domain.ErrInsufficientStock, http.StatusConflict, "insufficient stock"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed login attempts"},
		{"echo", echo.NewHTTPError(http.StatusForbidden, "insufficient role"), http.StatusForbidden, "insufficient role"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.msg}, body)
		})
	}
}
