package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"surveyhub/internal/apperr"
	"surveyhub/internal/cache"
	"surveyhub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies the signed, expiring bearer tokens of
// users and admins. Revoked token ids are kept in the session cache.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	sessions cache.SessionCache
	now      func() time.Time
}

// NewTokenService creates a token service. sessions may be nil, in which case
// logout cannot revoke tokens early.
func NewTokenService(secret string, ttl time.Duration, sessions cache.SessionCache) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: sessions,
		now:      time.Now,
	}
}

// Issue signs a token for the account in the given role
func (s *TokenService) Issue(account *model.Account, role model.Role) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &model.AccountClaims{
		Name:  account.Name,
		Email: account.Email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates the signature, expiry and revocation state of a token.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*model.Principal, error) {
	claims := &model.AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated(ErrInvalidToken.Error())
	}
	if !claims.Role.Valid() || claims.Subject == "" || claims.ID == "" {
		return nil, apperr.Unauthenticated(ErrInvalidToken.Error())
	}

	if s.sessions != nil {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperr.Store("check token revocation", err)
		}
		if revoked {
			return nil, apperr.Unauthenticated("token has been revoked")
		}
	}

	return &model.Principal{
		ID:        claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates the principal's token for the rest of its lifetime.
func (s *TokenService) Revoke(ctx context.Context, p *model.Principal) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return apperr.Store(fmt.Sprintf("revoke token %s", p.TokenID), err)
	}
	return nil
}
