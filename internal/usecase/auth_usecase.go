// Package usecase contains the application-specific business rules.
// Every operation reports its outcome as a *result.Result.
package usecase

import (
	"context"

	"scribe/internal/domain/result"
)

type AuthenticateInput struct {
	Name     string
	Password string
}

// AuthUsecase exchanges a name and password for a session token.
type AuthUsecase interface {
	Authenticate(ctx context.Context, input AuthenticateInput) *result.Result
}
