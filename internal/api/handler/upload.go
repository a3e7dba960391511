package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/pkg/formdata"
)

// maxUploadBytes caps spreadsheet uploads.
const maxUploadBytes = 10 << 20

// uploadedFile reads the multipart "file" part of the request.
func uploadedFile(c echo.Context) (ports.ImportFile, error) {
	boundary, ok := formdata.BoundaryFromContentType(c.Request().Header.Get(echo.HeaderContentType))
	if !ok {
		return ports.ImportFile{}, domain.NewValidationError("content type must be multipart/form-data")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes+1))
	if err != nil {
		return ports.ImportFile{}, domain.NewValidationError("could not read upload")
	}
	if len(body) > maxUploadBytes {
		return ports.ImportFile{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "upload exceeds 10MB")
	}

	part, ok := formdata.Decode(body, boundary).File("file")
	if !ok {
		return ports.ImportFile{}, domain.NewValidationError("file is required")
	}
	return ports.ImportFile{Filename: part.Filename, Content: part.Content}, nil
}
