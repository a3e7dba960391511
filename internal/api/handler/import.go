package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

type importFunc func(ctx context.Context, outletID, actor string, f ports.ImportFile) (*ports.ImportSummary, error)

// runImport decodes the upload and hands it to run.
func runImport(c echo.Context, run importFunc) error {
	file, err := uploadedFile(c)
	if err != nil {
		return err
	}
	summary, err := run(c.Request().Context(), middleware.OutletFrom(c), identity(c).Username, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
