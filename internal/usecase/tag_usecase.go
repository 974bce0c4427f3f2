package usecase

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/result"
)

// TagUsecase reads are public; every mutation is admin only.
type TagUsecase interface {
	ListTags(ctx context.Context) *result.Result
	GetTag(ctx context.Context, name string) *result.Result
	CreateTag(ctx context.Context, requester *entity.Identity, name string) *result.Result
	RenameTag(ctx context.Context, requester *entity.Identity, name, newName string) *result.Result
	DeleteTag(ctx context.Context, requester *entity.Identity, name string) *result.Result
}
