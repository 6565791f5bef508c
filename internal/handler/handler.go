// Package handler contains the HTTP handlers. Handlers bind and validate
// request payloads, delegate to the service layer and shape responses; no
// business rules live here.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
)

// messageResponse is the body of operations that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// parseIDParam parses a numeric path parameter. Non-numeric values are a
// client error, not a missing resource.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(name, raw, "invalid "+name+" parameter")
	}
	return uint(id), nil
}

// parsePagination reads page and per_page query parameters. Out-of-range
// values are clamped downstream rather than rejected.
func parsePagination(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	perPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	return page, perPage
}
