package handler

import (
	"log/slog"

	"scribe/internal/delivery/api/response"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

type AuthenticateRequest struct {
	Name     string `json:"name" validate:"max=256"`
	Password string `json:"password" validate:"max=1024"`
}

// Authenticate handles POST /api/authenticate.
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req AuthenticateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.authUC.Authenticate(c.Request().Context(), usecase.AuthenticateInput{
		Name:     req.Name,
		Password: req.Password,
	})

	return response.Result(c, res)
}
