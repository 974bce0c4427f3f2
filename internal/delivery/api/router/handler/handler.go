// Package handler binds HTTP requests to the resource operations.
package handler

import (
	"net/http"

	"scribe/internal/delivery/api/response"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/result"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the request into req and checks its struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrInvalidInput
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed
	}

	return nil
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.WithStatus(c, http.StatusOK, result.Success("status", "ok"))
}
