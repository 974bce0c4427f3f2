package handler

import (
	"log/slog"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves /api/users.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"max=256"`
	Password string `json:"password" validate:"max=1024"`
}

// UpdateUserRequest uses pointers so absent fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=256"`
	Password *string `json:"password" validate:"omitempty,max=1024"`
	Role     *string `json:"role" validate:"omitempty,max=32"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.userUC.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
	})

	return response.Result(c, res)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	return response.Result(c, h.userUC.ListUsers(c.Request().Context(), deliverycontext.GetIdentity(c)))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	return response.Result(c, h.userUC.GetUser(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("name")))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.userUC.UpdateUser(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("name"), usecase.UpdateUserInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})

	return response.Result(c, res)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	return response.Result(c, h.userUC.DeleteUser(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("name")))
}
