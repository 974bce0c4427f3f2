package handler

import (
	"log/slog"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TagHandlerParams holds dependencies for TagHandler, injected by Fx.
type TagHandlerParams struct {
	fx.In

	TagUC  usecase.TagUsecase
	Logger *slog.Logger
}

// TagHandler serves /api/tags.
type TagHandler struct {
	tagUC  usecase.TagUsecase
	logger *slog.Logger
}

func NewTagHandler(params TagHandlerParams) *TagHandler {
	return &TagHandler{
		tagUC:  params.TagUC,
		logger: params.Logger,
	}
}

type TagRequest struct {
	Name string `json:"name" validate:"max=256"`
}

func (h *TagHandler) ListTags(c echo.Context) error {
	return response.Result(c, h.tagUC.ListTags(c.Request().Context()))
}

func (h *TagHandler) GetTag(c echo.Context) error {
	return response.Result(c, h.tagUC.GetTag(c.Request().Context(), c.Param("name")))
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return response.Result(c, h.tagUC.CreateTag(c.Request().Context(), deliverycontext.GetIdentity(c), req.Name))
}

// RenameTag handles PUT /api/tags/:name with the new name in the body.
func (h *TagHandler) RenameTag(c echo.Context) error {
	var req TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return response.Result(c, h.tagUC.RenameTag(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("name"), req.Name))
}

func (h *TagHandler) DeleteTag(c echo.Context) error {
	return response.Result(c, h.tagUC.DeleteTag(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("name")))
}
