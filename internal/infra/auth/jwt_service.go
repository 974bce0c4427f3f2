package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scribe/config"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
)

// jwtService signs session tokens with HS256. Verification accepts nothing else.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.TokenSecret == "" {
		return nil, errors.New("token secret must be provided")
	}

	return newJWTService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue creates a token whose claims snapshot the identity's name and role.
func (s *jwtService) Issue(identity entity.Identity) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		Name: identity.Name,
		Role: identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Name,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify fails closed: any parse, signature, expiry or claim problem yields ErrInvalidToken.
func (s *jwtService) Verify(tokenString string) (*entity.Identity, error) {
	if tokenString == "" {
		return nil, service.ErrInvalidToken
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, service.ErrInvalidToken
	}

	role := entity.Role(claims.Role)
	if claims.Name == "" || !role.IsValid() {
		return nil, service.ErrInvalidToken
	}

	return &entity.Identity{Name: claims.Name, Role: role}, nil
}

func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
