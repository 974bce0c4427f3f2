// Package response writes outcome envelopes.
package response

import (
	"net/http"

	"scribe/internal/domain/result"

	"github.com/labstack/echo/v4"
)

// StatusFor maps an outcome to its HTTP status. Business fails are not transport errors.
func StatusFor(res *result.Result) int {
	if res == nil || res.Status == result.StatusError {
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// Result writes res with the status it maps to.
func Result(c echo.Context, res *result.Result) error {
	if res == nil {
		res = result.Error("Internal server error, please try again later.")
	}

	return c.JSON(StatusFor(res), res)
}

// WithStatus writes res with an explicit status, for failures raised outside the resource operations.
func WithStatus(c echo.Context, status int, res *result.Result) error {
	return c.JSON(status, res)
}
