package main

import (
	"context"

	"scribe/config"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
	"scribe/internal/infra/auth"
	logs "scribe/internal/infra/log"
	"scribe/internal/infra/persistence/migrations"
	"scribe/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var (
	errInvalidAdminName     = errors.New("invalid name, check requirements")
	errInvalidAdminPassword = errors.New("invalid password, check requirements")
)

// deps are the pieces of the server graph the CLI needs.
type deps struct {
	fx.In

	DB       *gorm.DB
	UserRepo repository.UserRepository
	RoleRepo repository.RoleRepository
	Hasher   service.PasswordHasher
}

// withDeps builds the dependency graph, starts it (which pings the database) and runs fn.
func withDeps(ctx context.Context, fn func(deps) error) error {
	var d deps
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewRoleRepository,
			auth.NewPBKDF2Hasher,
		),
		fx.Populate(&d),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "build dependencies")
	}
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "start dependencies")
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return fn(d)
}

func runMigrate(ctx context.Context, d deps, down bool) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	if down {
		return migrations.Down(ctx, sqlDB)
	}

	return migrations.Up(ctx, sqlDB)
}

func createRoles(ctx context.Context, roles repository.RoleRepository) ([]entity.Role, error) {
	created, err := roles.Ensure(ctx, entity.AllRoles())
	if err != nil {
		return nil, errors.Wrap(err, "ensure roles")
	}

	return created, nil
}

// createAdmin validates the inputs like account creation does and stores an admin.
func createAdmin(ctx context.Context, hasher service.PasswordHasher, users repository.UserRepository, name, password string) error {
	if !entity.IsValidUserName(name) {
		return errInvalidAdminName
	}
	if !hasher.IsValidPassword(password) {
		return errInvalidAdminPassword
	}

	credential, err := hasher.Derive(password)
	if err != nil {
		return errors.Wrap(err, "derive credential")
	}

	err = users.Create(ctx, &entity.User{
		Name:       name,
		Credential: credential,
		Role:       entity.RoleAdmin,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return errors.Wrapf(err, "user %q already exists", name)
	}
	if err != nil {
		return errors.Wrap(err, "create admin")
	}

	return nil
}
