package impl

import (
	"context"
	"log/slog"

	deliverycontext "scribe/internal/delivery/context"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/result"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
	"scribe/internal/usecase"

	"go.uber.org/fx"
)

type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	throttle     service.LoginThrottle
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Throttle     service.LoginThrottle
	Logger       *slog.Logger
}

func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		throttle:     params.Throttle,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate verifies a name and password and issues a session token.
func (srv *authService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) *result.Result {
	missing := result.Fields{}
	if input.Name == "" {
		missing[usecase.FieldName] = usecase.MsgNameRequired
	}
	if input.Password == "" {
		missing[usecase.FieldPassword] = usecase.MsgPasswordRequired
	}
	if len(missing) > 0 {
		return result.Fail(missing)
	}

	allowed, err := srv.throttle.Allow(ctx, input.Name)
	if err != nil {
		srv.log(ctx).Warn("Login throttle unavailable, allowing attempt", slog.Any("error", err))
	}
	if !allowed {
		srv.log(ctx).Info("Authentication throttled", slog.String("name", input.Name))

		return result.FailField(usecase.FieldName, usecase.MsgTooManyAttempts)
	}

	user, err := srv.userRepo.FindByName(ctx, input.Name)
	if errors.Is(err, repository.ErrUserNotFound) {
		return result.FailField(usecase.FieldName, usecase.MsgNoSuchUser)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to load user for authentication", slog.Any("error", err))

		return result.Error(usecase.ErrMsgAuthenticating)
	}

	ok, err := srv.hasher.Matches(input.Password, user.Credential)
	if err != nil {
		srv.log(ctx).Error("Failed to verify password", slog.String("name", user.Name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgAuthenticating)
	}
	if !ok {
		if err := srv.throttle.RecordFailure(ctx, user.Name); err != nil {
			srv.log(ctx).Warn("Failed to record login failure", slog.Any("error", err))
		}

		return result.FailField(usecase.FieldPassword, usecase.MsgWrongPassword)
	}

	if err := srv.throttle.Reset(ctx, user.Name); err != nil {
		srv.log(ctx).Warn("Failed to reset login failures", slog.Any("error", err))
	}

	token, err := srv.tokenService.Issue(user.Identity())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("name", user.Name), slog.Any("error", err))

		return result.Error(usecase.ErrMsgAuthenticating)
	}

	srv.log(ctx).Debug("User authenticated", slog.String("name", user.Name))

	return result.Success(usecase.KeyToken, token)
}
