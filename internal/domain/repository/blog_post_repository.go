package repository

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/errors"
)

// ErrBlogPostNotFound is returned when no blog post matches an id.
var ErrBlogPostNotFound = errors.New("blog post not found")

// Blog post columns that may appear in a Changeset.
const (
	ColumnTitle    = "title"
	ColumnBody     = "body"
	ColumnModified = "modified"
)

// BlogPostRepository persists blog posts and their ordered tag associations.
type BlogPostRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.BlogPost, error)

	// List returns every blog post ordered by creation time.
	List(ctx context.Context) ([]*entity.BlogPost, error)

	// Create inserts post, creating missing tags, and fills in post.ID.
	Create(ctx context.Context, post *entity.BlogPost) error

	// Update applies changes to the post. A non-nil tags replaces the post's tag set.
	Update(ctx context.Context, id int64, changes Changeset, tags []string) (*entity.BlogPost, error)

	// Delete removes the post and returns it as it was.
	Delete(ctx context.Context, id int64) (*entity.BlogPost, error)
}
