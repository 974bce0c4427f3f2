package usecase

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/domain/result"
)

type CreateUserInput struct {
	Name     string
	Password string
}

// UpdateUserInput carries only the fields present in the request; nil means absent.
type UpdateUserInput struct {
	Name     *string
	Password *string
	Role     *string
}

// UserUsecase manages accounts. The requester is nil for anonymous callers.
type UserUsecase interface {
	CreateUser(ctx context.Context, input CreateUserInput) *result.Result
	ListUsers(ctx context.Context, requester *entity.Identity) *result.Result
	GetUser(ctx context.Context, requester *entity.Identity, name string) *result.Result
	UpdateUser(ctx context.Context, requester *entity.Identity, name string, input UpdateUserInput) *result.Result
	DeleteUser(ctx context.Context, requester *entity.Identity, name string) *result.Result
}
