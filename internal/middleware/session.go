package middleware

import (
	"context"
	"net/http"

	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/domain/user"
	"github.com/shelfspace/shelfspace/internal/logger"
	"github.com/shelfspace/shelfspace/internal/port/database"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "jwt"

type sessionUserCtxKey struct{}
type sessionTenantCtxKey struct{}

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	VerifySession(token string) (*user.SessionClaims, error)
}

// Session returns middleware that authenticates requests via the session
// cookie. The user and tenant are re-resolved from the store on every
// request, so a deleted account or store is rejected even while its token
// is still within its expiry window.
func Session(verifier TokenVerifier, store database.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				unauthorized(w)
				return
			}

			claims, err := verifier.VerifySession(c.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			u, err := store.GetUser(r.Context(), claims.UserID)
			if err != nil {
				unauthorized(w)
				return
			}

			t, err := store.GetTenant(r.Context(), u.TenantID)
			if err != nil {
				unauthorized(w)
				return
			}

			logger.SetTenantID(r.Context(), t.ID)
			ctx := context.WithValue(r.Context(), sessionUserCtxKey{}, u)
			ctx = context.WithValue(ctx, sessionTenantCtxKey{}, t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user from the request context.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(sessionUserCtxKey{}).(*user.User)
	return u
}

// TenantFromContext returns the authenticated user's tenant from the request context.
func TenantFromContext(ctx context.Context) *tenant.Tenant {
	t, _ := ctx.Value(sessionTenantCtxKey{}).(*tenant.Tenant)
	return t
}

// WithSession injects a user and tenant into ctx. Exported for handler tests.
func WithSession(ctx context.Context, u *user.User, t *tenant.Tenant) context.Context {
	ctx = context.WithValue(ctx, sessionUserCtxKey{}, u)
	return context.WithValue(ctx, sessionTenantCtxKey{}, t)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"not authorized"}`))
}
