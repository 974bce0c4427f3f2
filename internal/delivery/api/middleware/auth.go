package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	deliverycontext "scribe/internal/delivery/context"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies session tokens and records the requester on the context.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects requests without a valid token. The token is read from
// the Authorization header, or from a "token" field of a JSON body.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			token = bodyToken(c)
		}
		if token == "" {
			return domainerrors.ErrTokenRequired
		}

		identity, err := m.tokenSvc.Verify(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected session token", slog.Any("error", err))

			return domainerrors.ErrTokenInvalid
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(header[len(bearerPrefix):])
}

// bodyToken peeks at a JSON body and restores it for the handler.
func bodyToken(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return ""
	}

	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	return body.Token
}
