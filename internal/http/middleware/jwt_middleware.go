package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// TokenParser is satisfied by *auth.Issuer.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireJWT rejects requests without a valid bearer token and stores the claims in the context.
func RequireJWT(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "missing bearer token")
				return
			}
			claims, err := parser.Parse(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")))
			if err != nil {
				logger.DebugContext(r.Context(), "Rejected token", "error", err)
				response.WriteError(w, http.StatusUnauthorized, "invalid or expired token", response.CodeInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, logger.UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission must run after RequireJWT.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				response.Unauthorized(w, "missing bearer token")
				return
			}
			if !claims.Can(perm) {
				logger.WarnContext(r.Context(), "Permission denied", "permission", perm, "role", claims.Role)
				response.Forbidden(w, "missing permission "+perm)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Claims(r *http.Request) *auth.Claims {
	v, _ := r.Context().Value(CtxClaims).(*auth.Claims)
	return v
}

// WithClaims is used by tests to fake an authenticated request.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, CtxClaims, claims)
}
