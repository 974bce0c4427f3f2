// Package router contains routing and server setup for the API delivery.
package router

import (
	"scribe/internal/delivery/api/middleware"
	"scribe/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	BlogPostHandler *handler.BlogPostHandler
	TagHandler      *handler.TagHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	blogPostHandler *handler.BlogPostHandler
	tagHandler      *handler.TagHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		blogPostHandler: params.BlogPostHandler,
		tagHandler:      params.TagHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	requireToken := r.authMiddleware.Authenticate

	api.POST("/authenticate", r.authHandler.Authenticate)

	users := api.Group("/users")
	{
		users.POST("", r.userHandler.CreateUser)
		users.GET("", r.userHandler.ListUsers, requireToken)
		users.GET("/:name", r.userHandler.GetUser, requireToken)
		users.PUT("/:name", r.userHandler.UpdateUser, requireToken)
		users.DELETE("/:name", r.userHandler.DeleteUser, requireToken)
	}

	blogPosts := api.Group("/blog-posts")
	{
		blogPosts.GET("", r.blogPostHandler.ListBlogPosts)
		blogPosts.GET("/:id", r.blogPostHandler.GetBlogPost)
		blogPosts.GET("/:id/qr", r.blogPostHandler.ShareCode)
		blogPosts.POST("", r.blogPostHandler.CreateBlogPost, requireToken)
		blogPosts.PUT("/:id", r.blogPostHandler.UpdateBlogPost, requireToken)
		blogPosts.DELETE("/:id", r.blogPostHandler.DeleteBlogPost, requireToken)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", r.tagHandler.ListTags)
		tags.GET("/:name", r.tagHandler.GetTag)
		tags.POST("", r.tagHandler.CreateTag, requireToken)
		tags.PUT("/:name", r.tagHandler.RenameTag, requireToken)
		tags.DELETE("/:name", r.tagHandler.DeleteTag, requireToken)
	}
}
