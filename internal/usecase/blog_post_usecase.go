package usecase

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/result"
)

type CreateBlogPostInput struct {
	Title string
	Tags  []string
	Body  string
}

// UpdateBlogPostInput carries only the fields present in the request; nil means absent.
type UpdateBlogPostInput struct {
	Title *string
	Tags  *[]string
	Body  *string
}

// BlogPostUsecase manages blog posts. Ids arrive in their textual form.
type BlogPostUsecase interface {
	ListBlogPosts(ctx context.Context) *result.Result
	GetBlogPost(ctx context.Context, id string) *result.Result
	CreateBlogPost(ctx context.Context, requester *entity.Identity, input CreateBlogPostInput) *result.Result
	UpdateBlogPost(ctx context.Context, requester *entity.Identity, id string, input UpdateBlogPostInput) *result.Result
	DeleteBlogPost(ctx context.Context, requester *entity.Identity, id string) *result.Result

	// ShareCode renders a PNG QR code linking to the post. The PNG is nil unless the result is a success.
	ShareCode(ctx context.Context, id string) ([]byte, *result.Result)
}
