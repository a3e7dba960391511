package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

// identity returns the caller stored by the role gate.
func identity(c echo.Context) domain.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

// bind decodes the body into req and runs its validate tags.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

var dayLayouts = []string{"2006-01-02", time.RFC3339}

// parseDay accepts a calendar date or an RFC3339 timestamp.
func parseDay(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError(field + " must be a date (YYYY-MM-DD)")
}

// dayQuery parses an optional date query parameter; absent means zero time.
func dayQuery(c echo.Context, name string) (time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return time.Time{}, nil
	}
	return parseDay(name, v)
}

func rangeQuery(c echo.Context) (time.Time, time.Time, error) {
	start, err := dayQuery(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dayQuery(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// intQuery parses an optional positive integer query parameter.
func intQuery(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(name + " must be a positive integer")
	}
	return n, nil
}

// windowFilter builds a list filter whose end day is inclusive.
func windowFilter(outletID string, start, end time.Time) ports.ListFilter {
	f := ports.ListFilter{OutletID: outletID, From: start}
	if !end.IsZero() {
		f.To = end.Add(24 * time.Hour)
	}
	return f
}
