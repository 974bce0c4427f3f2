package service

import (
	"time"

	"scribe/internal/domain/entity"
	"scribe/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only error Verify returns. Expired, forged and malformed
// tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("access token is invalid or expired")

// Claims is the session token payload: a snapshot of the identity at issuance.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, expiring session tokens.
type TokenService interface {
	// Issue signs a token for identity that expires after TTL.
	Issue(identity entity.Identity) (string, error)

	// Verify checks the signature and expiry of token and returns the identity it carries.
	Verify(token string) (*entity.Identity, error)

	// TTL is the lifetime of issued tokens.
	TTL() time.Duration
}
