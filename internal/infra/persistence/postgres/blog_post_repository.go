package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/repository"
	"scribe/internal/errors"
	"scribe/internal/infra/persistence/model"
)

const blogPostReturning = "RETURNING id, title, author, created, modified, body"

var updatableBlogPostColumns = []string{
	repository.ColumnTitle,
	repository.ColumnBody,
	repository.ColumnModified,
}

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) repository.BlogPostRepository {
	return &blogPostRepository{db: db}
}

func orderedTags(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func (repo *blogPostRepository) FindByID(ctx context.Context, id int64) (*entity.BlogPost, error) {
	var postM model.BlogPostModel
	err := repo.db.WithContext(ctx).
		Preload("Tags", orderedTags).
		Where("id = ?", id).
		First(&postM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find blog post by id")
	}

	return toBlogPostDomain(&postM), nil
}

func (repo *blogPostRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	var postMs []*model.BlogPostModel
	err := repo.db.WithContext(ctx).
		Preload("Tags", orderedTags).
		Order("created, id").
		Find(&postMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blog posts")
	}

	posts := make([]*entity.BlogPost, 0, len(postMs))
	for _, postM := range postMs {
		posts = append(posts, toBlogPostDomain(postM))
	}

	return posts, nil
}

func (repo *blogPostRepository) Create(ctx context.Context, post *entity.BlogPost) error {
	postM := fromBlogPostDomain(post)

	if err := repo.db.WithContext(ctx).Omit("Tags").Create(postM).Error; err != nil {
		return translateWriteError(err, "failed to create blog post")
	}
	if err := repo.replaceTags(ctx, postM.ID, post.Tags); err != nil {
		return err
	}

	post.ID = postM.ID
	post.Created = postM.Created

	return nil
}

// Update applies changes and, when tags is non-nil, swaps the whole tag set.
func (repo *blogPostRepository) Update(ctx context.Context, id int64, changes repository.Changeset, tags []string) (*entity.BlogPost, error) {
	if changes.IsEmpty() && tags == nil {
		return repo.FindByID(ctx, id)
	}
	if err := changes.Validate(updatableBlogPostColumns...); err != nil {
		return nil, err
	}

	if !changes.IsEmpty() {
		setClause, values := changes.SetClause()
		values = append(values, id)

		var postM model.BlogPostModel
		result := repo.db.WithContext(ctx).
			Raw("UPDATE blog_posts SET "+setClause+" WHERE id = ? "+blogPostReturning, values...).
			Scan(&postM)
		if result.Error != nil {
			return nil, translateWriteError(result.Error, "failed to update blog post")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrBlogPostNotFound
		}
	}

	if tags != nil {
		if err := repo.replaceTags(ctx, id, tags); err != nil {
			return nil, err
		}
	}

	return repo.FindByID(ctx, id)
}

func (repo *blogPostRepository) Delete(ctx context.Context, id int64) (*entity.BlogPost, error) {
	post, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogPostModel{})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to delete blog post")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrBlogPostNotFound
	}

	return post, nil
}

// replaceTags rewrites the post's associations, creating tag rows that do not exist yet.
func (repo *blogPostRepository) replaceTags(ctx context.Context, id int64, tags []string) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("blog_post_id = ?", id).Delete(&model.BlogPostTagModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear blog post tags")
	}
	if len(tags) == 0 {
		return nil
	}

	tagMs := make([]model.TagModel, 0, len(tags))
	links := make([]model.BlogPostTagModel, 0, len(tags))
	for i, name := range tags {
		tagMs = append(tagMs, model.TagModel{Name: name})
		links = append(links, model.BlogPostTagModel{BlogPostID: id, TagName: name, Position: i})
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tagMs).Error; err != nil {
		return translateWriteError(err, "failed to create tags")
	}
	if err := db.Create(&links).Error; err != nil {
		return translateWriteError(err, "failed to link blog post tags")
	}

	return nil
}

// --- Mapper Functions ---

func toBlogPostDomain(data *model.BlogPostModel) *entity.BlogPost {
	if data == nil {
		return nil
	}

	tags := make([]string, 0, len(data.Tags))
	for _, link := range data.Tags {
		tags = append(tags, link.TagName)
	}

	return &entity.BlogPost{
		ID:       data.ID,
		Title:    data.Title,
		Author:   data.Author,
		Created:  data.Created,
		Modified: data.Modified,
		Tags:     tags,
		Body:     data.Body,
	}
}

func fromBlogPostDomain(data *entity.BlogPost) *model.BlogPostModel {
	if data == nil {
		return nil
	}

	return &model.BlogPostModel{
		ID:       data.ID,
		Title:    data.Title,
		Author:   data.Author,
		Created:  data.Created,
		Modified: data.Modified,
		Body:     data.Body,
	}
}
