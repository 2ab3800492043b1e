package middleware

import (
	"net/http"

	"github.com/shelfspace/shelfspace/internal/domain/user"
)

// RequireRole returns middleware that restricts access to users with one of
// the given roles. It must run after Session.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				unauthorized(w)
				return
			}

			if !allowed[u.Role] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message":"forbidden"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
