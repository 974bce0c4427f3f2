package repository

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/errors"
)

// ErrTagNotFound is returned when no tag matches a name.
var ErrTagNotFound = errors.New("tag not found")

// TagRepository persists tags keyed by name.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)

	// Create returns ErrDuplicate if the tag exists.
	Create(ctx context.Context, tag *entity.Tag) error

	// Rename changes the key of a tag. Blog post associations follow the new name.
	Rename(ctx context.Context, name, newName string) (*entity.Tag, error)

	Delete(ctx context.Context, name string) (*entity.Tag, error)
}
