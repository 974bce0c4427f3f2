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

type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	events    eventEmitter
	now       func() time.Time
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		events:    eventEmitter{publisher: params.Publisher, now: time.Now},
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser registers a new account with the user role.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) *result.Result {
	invalid := result.Fields{}
	if !entity.IsValidUserName(input.Name) {
		invalid[usecase.FieldName] = usecase.MsgInvalidName
	}
	if !srv.hasher.IsValidPassword(input.Password) {
		invalid[usecase.FieldPassword] = usecase.MsgInvalidPassword
	}
	if len(invalid) > 0 {
		return result.Fail(invalid)
	}

	credential, err := srv.hasher.Derive(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to derive credential", slog.Any("error", err))

		return result.Error(usecase.ErrMsgCreatingUser)
	}

	user := &entity.User{
		Name:       input.Name,
		Credential: credential,
		Role:       entity.RoleUser,
		CreatedAt:  srv.now().UTC(),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return result.FailField(usecase.FieldName, usecase.MsgNameExists)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("name", input.Name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgCreatingUser)
	}

	srv.log(ctx).Info("User created", slog.String("name", user.Name))
	identity := user.Identity()
	srv.events.emit(ctx, srv.log(ctx), service.EventUserCreated, user.Name, &identity)

	return result.Success(usecase.KeyUser, usecase.NewUserView(user))
}

func (srv *userService) ListUsers(ctx context.Context, requester *entity.Identity) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionListUsers, policy.Unscoped()); denial != nil {
		return denied(denial)
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingUsers)
	}

	views := make([]usecase.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, usecase.NewUserView(u))
	}

	return result.Success(usecase.KeyUsers, views)
}

func (srv *userService) GetUser(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionReadUser, policy.Account(name)); denial != nil {
		return denied(denial)
	}

	user, err := srv.userRepo.FindByName(ctx, name)
	if errors.Is(err, repository.ErrUserNotFound) {
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchUser)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to get user", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgRetrievingUser)
	}

	return result.Success(usecase.KeyUser, usecase.NewUserView(user))
}

// UpdateUser applies the present fields of input to the account called name.
func (srv *userService) UpdateUser(ctx context.Context, requester *entity.Identity, name string, input usecase.UpdateUserInput) *result.Result {
	target := policy.Account(name)
	if input.Role != nil {
		target = policy.AccountRoleChange(name)
	}
	if denial := policy.Authorize(requester, policy.ActionUpdateUser, target); denial != nil {
		return denied(denial)
	}

	invalid := result.Fields{}
	if input.Name != nil && !entity.IsValidUserName(*input.Name) {
		invalid[usecase.FieldName] = usecase.MsgInvalidName
	}
	if input.Password != nil && !srv.hasher.IsValidPassword(*input.Password) {
		invalid[usecase.FieldPassword] = usecase.MsgInvalidPassword
	}
	if input.Role != nil && !entity.Role(*input.Role).IsValid() {
		invalid[usecase.FieldRole] = usecase.MsgInvalidRole
	}
	if len(invalid) > 0 {
		return result.Fail(invalid)
	}

	changes, err := srv.userChanges(input)
	if err != nil {
		srv.log(ctx).Error("Failed to derive credential", slog.Any("error", err))

		return result.Error(usecase.ErrMsgUpdatingUser)
	}
	if changes.IsEmpty() {
		return srv.GetUser(ctx, requester, name)
	}

	var updated *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		updated, txErr = repoFactory.UserRepo().Update(ctx, name, changes)

		return txErr
	})
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchUser)
	case errors.Is(err, repository.ErrDuplicate):
		return result.FailField(usecase.FieldName, usecase.MsgNameExists)
	case err != nil:
		srv.log(ctx).Error("Failed to update user", slog.String("name", name), slog.Any("columns", changes.Columns()), slog.Any("error", err))

		return result.Error(usecase.ErrMsgUpdatingUser)
	}

	srv.log(ctx).Info("User updated", slog.String("name", name), slog.Any("columns", changes.Columns()))
	srv.events.emit(ctx, srv.log(ctx), service.EventUserUpdated, updated.Name, requester)

	return result.Success(usecase.KeyUser, usecase.NewUserView(updated))
}

// userChanges converts the present fields into column assignments.
// A password contributes a whole new credential.
func (srv *userService) userChanges(input usecase.UpdateUserInput) (repository.Changeset, error) {
	var changes repository.Changeset
	if input.Name != nil {
		changes = changes.Set(repository.ColumnUserName, *input.Name)
	}
	if input.Password != nil {
		credential, err := srv.hasher.Derive(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "derive credential")
		}
		changes = changes.
			Set(repository.ColumnPasswordHash, credential.Hash).
			Set(repository.ColumnSalt, credential.Salt).
			Set(repository.ColumnIterations, credential.Iterations)
	}
	if input.Role != nil {
		changes = changes.Set(repository.ColumnRole, *input.Role)
	}

	return changes, nil
}

func (srv *userService) DeleteUser(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	if denial := policy.Authorize(requester, policy.ActionDeleteUser, policy.Account(name)); denial != nil {
		return denied(denial)
	}

	var deleted *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var txErr error
		deleted, txErr = repoFactory.UserRepo().Delete(ctx, name)

		return txErr
	})
	if errors.Is(err, repository.ErrUserNotFound) {
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchUser)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.String("name", name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgDeletingUser)
	}

	srv.log(ctx).Info("User deleted", slog.String("name", name))
	srv.events.emit(ctx, srv.log(ctx), service.EventUserDeleted, deleted.Name, requester)

	return result.Success(usecase.KeyUser, usecase.NewUserView(deleted))
}

// denied renders a policy denial as a fail keyed by the violated constraint.
func denied(d *policy.Denial) *result.Result {
	return result.FailField(d.Field, d.Reason)
}
