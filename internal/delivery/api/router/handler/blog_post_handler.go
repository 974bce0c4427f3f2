package handler

import (
	"log/slog"
	"net/http"

	"scribe/internal/delivery/api/response"
	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BlogPostHandlerParams holds dependencies for BlogPostHandler, injected by Fx.
type BlogPostHandlerParams struct {
	fx.In

	BlogPostUC usecase.BlogPostUsecase
	Logger     *slog.Logger
}

// BlogPostHandler serves /api/blog-posts.
type BlogPostHandler struct {
	blogPostUC usecase.BlogPostUsecase
	logger     *slog.Logger
}

func NewBlogPostHandler(params BlogPostHandlerParams) *BlogPostHandler {
	return &BlogPostHandler{
		blogPostUC: params.BlogPostUC,
		logger:     params.Logger,
	}
}

type CreateBlogPostRequest struct {
	Title string   `json:"title" validate:"max=512"`
	Tags  []string `json:"tags" validate:"max=64"`
	Body  string   `json:"body"`
}

type UpdateBlogPostRequest struct {
	Title *string   `json:"title" validate:"omitempty,max=512"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=64"`
	Body  *string   `json:"body"`
}

func (h *BlogPostHandler) ListBlogPosts(c echo.Context) error {
	return response.Result(c, h.blogPostUC.ListBlogPosts(c.Request().Context()))
}

func (h *BlogPostHandler) GetBlogPost(c echo.Context) error {
	return response.Result(c, h.blogPostUC.GetBlogPost(c.Request().Context(), c.Param("id")))
}

func (h *BlogPostHandler) CreateBlogPost(c echo.Context) error {
	var req CreateBlogPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.blogPostUC.CreateBlogPost(c.Request().Context(), deliverycontext.GetIdentity(c), usecase.CreateBlogPostInput{
		Title: req.Title,
		Tags:  req.Tags,
		Body:  req.Body,
	})

	return response.Result(c, res)
}

func (h *BlogPostHandler) UpdateBlogPost(c echo.Context) error {
	var req UpdateBlogPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res := h.blogPostUC.UpdateBlogPost(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("id"), usecase.UpdateBlogPostInput{
		Title: req.Title,
		Tags:  req.Tags,
		Body:  req.Body,
	})

	return response.Result(c, res)
}

func (h *BlogPostHandler) DeleteBlogPost(c echo.Context) error {
	return response.Result(c, h.blogPostUC.DeleteBlogPost(c.Request().Context(), deliverycontext.GetIdentity(c), c.Param("id")))
}

// ShareCode serves the post's QR code as image/png, or the fail envelope.
func (h *BlogPostHandler) ShareCode(c echo.Context) error {
	png, res := h.blogPostUC.ShareCode(c.Request().Context(), c.Param("id"))
	if !res.IsSuccess() {
		return response.Result(c, res)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
