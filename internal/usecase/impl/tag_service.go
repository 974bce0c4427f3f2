package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/policy"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/result"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
	"scribe/internal/usecase"

	"go.uber.org/fx"
)

type tagService struct {
	txManager repository.TransactionManager
	tagRepo   repository.TagRepository
	events    eventEmitter
	logger    *slog.Logger
}

// TagServiceParams holds dependencies for TagService, injected by Fx.
type TagServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TagRepo   repository.TagRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

func NewTagService(params TagServiceParams) usecase.TagUsecase {
	return &tagService{
		txManager: params.TxManager,
		tagRepo:   params.TagRepo,
		events:    eventEmitter{publisher: params.Publisher, now: time.Now},
		logger:    params.Logger,
	}
}

func (srv *tagService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *tagService) ListTags(ctx context.Context) *result.Result {
	tags, err := srv.tagRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list tags", slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingTags)
	}

	views := make([]usecase.TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, usecase.NewTagView(t))
	}

	return result.Success(usecase.KeyTags, views)
}

func (srv *tagService) GetTag(ctx context.Context, name string) *result.Result {
	tag, err := srv.tagRepo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrTagNotFound) {
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchTag)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to get tag", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingTag)
	}

	return result.Success(usecase.KeyTag, usecase.NewTagView(tag))
}

func (srv *tagService) CreateTag(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionManageTags, policy.Unscoped()); denial != nil {
		return denied(denial)
	}
	if !entity.IsValidTagName(name) {
		return result.FailField(usecase.FieldName, usecase.MsgInvalidTagName)
	}

	tag := &entity.Tag{Name: name}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TagRepo().Create(ctx, tag)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return result.FailField(usecase.FieldName, usecase.MsgTagExists)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to create tag", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgCreatingTag)
	}

	srv.log(ctx).Info("Tag created", slog.String("name", name))
	srv.events.emit(ctx, srv.log(ctx), service.EventTagCreated, name, requester)

	return result.Success(usecase.KeyTag, usecase.NewTagView(tag))
}

// RenameTag changes a tag's name. Posts carrying the tag follow the rename.
func (srv *tagService) RenameTag(ctx context.Context, requester *entity.Identity, name, newName string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionManageTags, policy.Unscoped()); denial != nil {
		return denied(denial)
	}
	if !entity.IsValidTagName(newName) {
		return result.FailField(usecase.FieldName, usecase.MsgInvalidTagName)
	}

	var renamed *entity.Tag
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		renamed, txErr = repoFactory.TagRepo().Rename(ctx, name, newName)

		return txErr
	})
	switch {
	case errors.Is(err, repository.ErrTagNotFound):
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchTag)
	case errors.Is(err, repository.ErrDuplicate):
		return result.FailField(usecase.FieldName, usecase.MsgTagExists)
	case err != nil:
		srv.log(ctx).Error("Failed to rename tag", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgUpdatingTag)
	}

	srv.log(ctx).Info("Tag renamed", slog.String("from", name), slog.String("to", renamed.Name))
	srv.events.emit(ctx, srv.log(ctx), service.EventTagUpdated, renamed.Name, requester)

	return result.Success(usecase.KeyTag, usecase.NewTagView(renamed))
}

func (srv *tagService) DeleteTag(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionManageTags, policy.Unscoped()); denial != nil {
		return denied(denial)
	}

	var deleted *entity.Tag
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		deleted, txErr = repoFactory.TagRepo().Delete(ctx, name)

		return txErr
	})
	if errors.Is(err, repository.ErrTagNotFound) {
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchTag)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to delete tag", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgDeletingTag)
	}

	srv.log(ctx).Info("Tag deleted", slog.String("name", name))
	srv.events.emit(ctx, srv.log(ctx), service.EventTagDeleted, name, requester)

	return result.Success(usecase.KeyTag, usecase.NewTagView(deleted))
}
