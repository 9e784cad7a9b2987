package middleware

import (
	"context"
	"net/http"
	"strings"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	tokens *service.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth validates the bearer token of a user or admin
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			envelope.Error(w, r, apperr.Unauthenticated("missing authorization header"))
			return
		}

		p, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			envelope.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// OptionalAuth attaches the caller when a bearer token is sent and lets
// anonymous requests through. A token that is sent but invalid is rejected.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			envelope.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin is RequireAuth restricted to admin tokens
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetPrincipal(r.Context()).IsAdmin() {
			envelope.Error(w, r, apperr.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// GetPrincipal extracts the authenticated caller from context
func GetPrincipal(ctx context.Context) *model.Principal {
	if v, ok := ctx.Value(PrincipalKey).(*model.Principal); ok {
		return v
	}
	return nil
}

// WithPrincipal stores p in ctx
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
