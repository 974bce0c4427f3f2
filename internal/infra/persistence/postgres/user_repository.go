// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

const userReturning = "RETURNING name, password_hash, salt, iterations, role, created_at"

var updatableUserColumns = []string{
	repository.ColumnUserName,
	repository.ColumnPasswordHash,
	repository.ColumnSalt,
	repository.ColumnIterations,
	repository.ColumnRole,
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("name = ?", name).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by name")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateWriteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt

	return nil
}

// Update writes only the columns in changes, in one statement.
func (repo *userRepository) Update(ctx context.Context, name string, changes repository.Changeset) (*entity.User, error) {
	if changes.IsEmpty() {
		return repo.FindByName(ctx, name)
	}
	if err := changes.Validate(updatableUserColumns...); err != nil {
		return nil, err
	}

	setClause, values := changes.SetClause()
	values = append(values, name)

	var userM model.UserModel
	result := repo.db.WithContext(ctx).
		Raw("UPDATE users SET "+setClause+" WHERE name = ? "+userReturning, values...).
		Scan(&userM)
	if result.Error != nil {
		return nil, translateWriteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) Delete(ctx context.Context, name string) (*entity.User, error) {
	var userM model.UserModel
	result := repo.db.WithContext(ctx).
		Raw("DELETE FROM users WHERE name = ? "+userReturning, name).
		Scan(&userM)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(&userM), nil
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) Ensure(ctx context.Context, roles []entity.Role) ([]entity.Role, error) {
	var created []entity.Role
	for _, role := range roles {
		result := repo.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.RoleModel{Name: role.String()})
		if result.Error != nil {
			return created, errors.Wrapf(result.Error, "failed to ensure role %s", role)
		}
		if result.RowsAffected > 0 {
			created = append(created, role)
		}
	}

	return created, nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		Name: data.Name,
		Credential: entity.Credential{
			Hash:       data.PasswordHash,
			Salt:       data.Salt,
			Iterations: data.Iterations,
		},
		Role:      entity.Role(data.Role),
		CreatedAt: data.CreatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		Name:         data.Name,
		PasswordHash: data.Credential.Hash,
		Salt:         data.Credential.Salt,
		Iterations:   data.Credential.Iterations,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
	}
}
