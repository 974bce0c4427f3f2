// Package middleware holds the API specific echo middlewares.
package middleware

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/result"
	"scribe/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders errors that escape the handlers as outcome envelopes.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Field() != "" {
			_ = response.WithStatus(c, appErr.HTTPCode(), result.FailField(appErr.Field(), appErr.Message()))

			return
		}
		_ = response.WithStatus(c, appErr.HTTPCode(), result.Error(appErr.Message()))

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.WithStatus(c, httpErr.Code, result.Error(message))

		return
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.WithStatus(c, http.StatusInternalServerError, result.Error(domainerrors.ErrInternalError.Message()))
}
