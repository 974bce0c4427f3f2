package postgres

import (
	"context"

	"gorm.io/gorm"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/repository"
	"scribe/internal/errors"
	"scribe/internal/infra/persistence/model"
)

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (repo *tagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tagM model.TagModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&tagM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag by name")
	}

	return &entity.Tag{Name: tagM.Name}, nil
}

func (repo *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	var tagMs []model.TagModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	tags := make([]*entity.Tag, 0, len(tagMs))
	for _, tagM := range tagMs {
		tags = append(tags, &entity.Tag{Name: tagM.Name})
	}

	return tags, nil
}

func (repo *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	if err := repo.db.WithContext(ctx).Create(&model.TagModel{Name: tag.Name}).Error; err != nil {
		return translateWriteError(err, "failed to create tag")
	}

	return nil
}

// Rename relies on ON UPDATE CASCADE to carry blog_post_tags along.
func (repo *tagRepository) Rename(ctx context.Context, name, newName string) (*entity.Tag, error) {
	var tagM model.TagModel
	result := repo.db.WithContext(ctx).
		Raw("UPDATE tags SET name = ? WHERE name = ? RETURNING name", newName, name).
		Scan(&tagM)
	if result.Error != nil {
		return nil, translateWriteError(result.Error, "failed to rename tag")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrTagNotFound
	}

	return &entity.Tag{Name: tagM.Name}, nil
}

func (repo *tagRepository) Delete(ctx context.Context, name string) (*entity.Tag, error) {
	var tagM model.TagModel
	result := repo.db.WithContext(ctx).
		Raw("DELETE FROM tags WHERE name = ? RETURNING name", name).
		Scan(&tagM)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to delete tag")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrTagNotFound
	}

	return &entity.Tag{Name: tagM.Name}, nil
}
