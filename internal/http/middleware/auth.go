package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/logx"
)

type ctxKey int

const userKey ctxKey = iota

// UserFromContext returns the authenticated user set by Authenticator, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// TokenParser extracts the subject email from a bearer token.
type TokenParser interface {
	Parse(token string) (string, error)
}

// UserLookup resolves a token subject to its active user.
type UserLookup interface {
	Lookup(ctx context.Context, email string) (*domain.User, error)
}

// Authenticator guards routes behind a bearer token. The token subject is
// resolved against the user store on every request so a deactivated user
// loses access immediately.
type Authenticator struct {
	tokens TokenParser
	users  UserLookup
	logger logx.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens TokenParser, users UserLookup, logger logx.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Handler returns chi-style middleware that rejects requests without a valid
// bearer token and stores the resolved user in the request context.
func (a *Authenticator) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			email, err := a.tokens.Parse(token)
			if err != nil {
				a.logger.Debug("token rejected", logx.String("path", r.URL.Path), logx.Err(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			user, err := a.users.Lookup(r.Context(), email)
			if err != nil {
				a.logger.Debug("token subject rejected", logx.String("path", r.URL.Path), logx.Err(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireManager allows only roles that may operate on any package.
func RequireManager(next http.Handler) http.Handler {
	return requireRole(next, func(u *domain.User) bool { return u.Role.CanManagePackages() })
}

// RequireAdmin allows only administrators.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, func(u *domain.User) bool { return u.Role == domain.RoleAdmin })
}

func requireRole(next http.Handler, allowed func(*domain.User) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		if u == nil {
			unauthorized(w, "missing bearer token")
			return
		}
		if !allowed(u) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "insufficient permissions"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
