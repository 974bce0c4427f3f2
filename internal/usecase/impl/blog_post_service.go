package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"scribe/config"
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

type blogPostService struct {
	txManager    repository.TransactionManager
	blogPostRepo repository.BlogPostRepository
	qrCodes      service.QRCodeService
	shareBaseURL string
	events       eventEmitter
	now          func() time.Time
	logger       *slog.Logger
}

// BlogPostServiceParams holds dependencies for BlogPostService, injected by Fx.
type BlogPostServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	BlogPostRepo repository.BlogPostRepository
	QRCodes      service.QRCodeService
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

func NewBlogPostService(params BlogPostServiceParams) usecase.BlogPostUsecase {
	return &blogPostService{
		txManager:    params.TxManager,
		blogPostRepo: params.BlogPostRepo,
		qrCodes:      params.QRCodes,
		shareBaseURL: strings.TrimRight(params.Config.HTTP.ShareBaseURL, "/"),
		events:       eventEmitter{publisher: params.Publisher, now: time.Now},
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *blogPostService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *blogPostService) ListBlogPosts(ctx context.Context) *result.Result {
	posts, err := srv.blogPostRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list blog posts", slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingBlogPosts)
	}

	views := make([]usecase.BlogPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, usecase.NewBlogPostView(p))
	}

	return result.Success(usecase.KeyBlogPosts, views)
}

func (srv *blogPostService) GetBlogPost(ctx context.Context, id string) *result.Result {
	postID, ok := parseBlogPostID(id)
	if !ok {
		return result.FailField(usecase.FieldID, usecase.MsgIDNotInteger)
	}

	post, err := srv.blogPostRepo.FindByID(ctx, postID)
	if errors.Is(err, repository.ErrBlogPostNotFound) {
		return result.FailField(usecase.FieldID, usecase.MsgNoSuchBlogPost)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to get blog post", slog.Int64("id", postID), slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingBlogPost)
	}

	return result.Success(usecase.KeyBlogPost, usecase.NewBlogPostView(post))
}

// CreateBlogPost publishes a post authored by the requester.
func (srv *blogPostService) CreateBlogPost(ctx context.Context, requester *entity.Identity, input usecase.CreateBlogPostInput) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionCreateBlogPost, policy.Unscoped()); denial != nil {
		return denied(denial)
	}

	invalid := result.Fields{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		invalid[usecase.FieldTitle] = usecase.MsgTitleRequired
	}
	tags, ok := normalizeTags(input.Tags)
	if !ok {
		invalid[usecase.FieldTags] = usecase.MsgInvalidTagName
	}
	if len(invalid) > 0 {
		return result.Fail(invalid)
	}

	post := &entity.BlogPost{
		Title:   title,
		Author:  requester.Name,
		Created: srv.now().UTC(),
		Tags:    tags,
		Body:    input.Body,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.BlogPostRepo().Create(ctx, post)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create blog post", slog.String("author", post.Author), slog.Any("error", err))

		return result.Error(usecase.ErrMsgCreatingBlogPost)
	}

	srv.log(ctx).Info("Blog post created", slog.Int64("id", post.ID), slog.String("author", post.Author))
	srv.events.emit(ctx, srv.log(ctx), service.EventBlogPostCreated, strconv.FormatInt(post.ID, 10), requester)

	return result.Success(usecase.KeyBlogPost, usecase.NewBlogPostView(post))
}

// UpdateBlogPost applies the present fields of input. Ownership is checked
// against the stored author inside the same transaction as the write.
func (srv *blogPostService) UpdateBlogPost(ctx context.Context, requester *entity.Identity, id string, input usecase.UpdateBlogPostInput) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionUpdateBlogPost, policy.Unscoped()); denial != nil {
		return denied(denial)
	}

	postID, ok := parseBlogPostID(id)
	if !ok {
		return result.FailField(usecase.FieldID, usecase.MsgIDNotInteger)
	}

	invalid := result.Fields{}
	var changes repository.Changeset
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			invalid[usecase.FieldTitle] = usecase.MsgTitleRequired
		}
		changes = changes.Set(repository.ColumnTitle, title)
	}
	var tags []string
	if input.Tags != nil {
		if tags, ok = normalizeTags(*input.Tags); !ok {
			invalid[usecase.FieldTags] = usecase.MsgInvalidTagName
		}
	}
	if len(invalid) > 0 {
		return result.Fail(invalid)
	}
	if input.Body != nil {
		changes = changes.Set(repository.ColumnBody, *input.Body)
	}
	changes = changes.Set(repository.ColumnModified, srv.now().UTC())

	var updated *entity.BlogPost
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.BlogPostRepo()
		if err := srv.authorizeOwner(ctx, repo, requester, policy.ActionUpdateBlogPost, postID); err != nil {
			return err
		}

		var txErr error
		updated, txErr = repo.Update(ctx, postID, changes, tags)

		return txErr
	})
	if res := srv.blogPostWriteFailure(ctx, err, postID, usecase.ErrMsgUpdatingBlogPost); res != nil {
		return res
	}

	srv.log(ctx).Info("Blog post updated", slog.Int64("id", postID), slog.Any("columns", changes.Columns()))
	srv.events.emit(ctx, srv.log(ctx), service.EventBlogPostUpdated, strconv.FormatInt(postID, 10), requester)

	return result.Success(usecase.KeyBlogPost, usecase.NewBlogPostView(updated))
}

func (srv *blogPostService) DeleteBlogPost(ctx context.Context, requester *entity.Identity, id string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionDeleteBlogPost, policy.Unscoped()); denial != nil {
		return denied(denial)
	}

	postID, ok := parseBlogPostID(id)
	if !ok {
		return result.FailField(usecase.FieldID, usecase.MsgIDNotInteger)
	}

	var deleted *entity.BlogPost
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.BlogPostRepo()
		if err := srv.authorizeOwner(ctx, repo, requester, policy.ActionDeleteBlogPost, postID); err != nil {
			return err
		}

		var txErr error
		deleted, txErr = repo.Delete(ctx, postID)

		return txErr
	})
	if res := srv.blogPostWriteFailure(ctx, err, postID, usecase.ErrMsgDeletingBlogPost); res != nil {
		return res
	}

	srv.log(ctx).Info("Blog post deleted", slog.Int64("id", postID))
	srv.events.emit(ctx, srv.log(ctx), service.EventBlogPostDeleted, strconv.FormatInt(postID, 10), requester)

	return result.Success(usecase.KeyBlogPost, usecase.NewBlogPostView(deleted))
}

// ShareCode renders a QR code linking to an existing post.
func (srv *blogPostService) ShareCode(ctx context.Context, id string) ([]byte, *result.Result) {
	postID, ok := parseBlogPostID(id)
	if !ok {
		return nil, result.FailField(usecase.FieldID, usecase.MsgIDNotInteger)
	}

	_, err := srv.blogPostRepo.FindByID(ctx, postID)
	if errors.Is(err, repository.ErrBlogPostNotFound) {
		return nil, result.FailField(usecase.FieldID, usecase.MsgNoSuchBlogPost)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to get blog post for share code", slog.Int64("id", postID), slog.Any("error", err))

		return nil, result.Error(usecase.ErrMsgGeneratingShareCode)
	}

	url := srv.shareBaseURL + "/blog-posts/" + strconv.FormatInt(postID, 10)
	png, err := srv.qrCodes.Encode(url)
	if err != nil {
		srv.log(ctx).Error("Failed to encode share code", slog.Int64("id", postID), slog.Any("error", err))

		return nil, result.Error(usecase.ErrMsgGeneratingShareCode)
	}

	return png, result.Success(usecase.KeyShareURL, url)
}

// authorizeOwner loads the post and returns a *policy.Denial if requester may not act on it.
func (srv *blogPostService) authorizeOwner(
	ctx context.Context,
	repo repository.BlogPostRepository,
	requester *entity.Identity,
	action policy.Action,
	postID int64,
) error {
	post, err := repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if denial := policy.Authorize(requester, action, policy.AuthoredBy(post.Author)); denial != nil {
		return denial
	}

	return nil
}

// blogPostWriteFailure maps a failed update or delete transaction to its outcome.
// It returns nil when err is nil.
func (srv *blogPostService) blogPostWriteFailure(ctx context.Context, err error, postID int64, errMsg string) *result.Result {
	if err == nil {
		return nil
	}

	var denial *policy.Denial
	switch {
	case errors.As(err, &denial):
		return denied(denial)
	case errors.Is(err, repository.ErrBlogPostNotFound):
		return result.FailField(usecase.FieldID, usecase.MsgNoSuchBlogPost)
	default:
		srv.log(ctx).Error("Blog post write failed", slog.Int64("id", postID), slog.Any("error", err))

		return result.Error(errMsg)
	}
}

// maxBlogPostID is the largest integer clients can represent exactly as a JSON number.
const maxBlogPostID = 1<<53 - 1

func parseBlogPostID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id > maxBlogPostID || id < -maxBlogPostID {
		return 0, false
	}

	return id, true
}

// normalizeTags trims and de-duplicates tags, keeping first occurrences in order.
// The returned slice is never nil.
func normalizeTags(raw []string) ([]string, bool) {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if !entity.IsValidTagName(tag) {
			return nil, false
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags, true
}
