package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

type contextKey string

const UserContextKey contextKey = "user"

// BearerToken returns the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// UserFromContext returns the user set by RequireAuthenticated.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(UserContextKey).(domain.User)
	return u, ok
}

// RequireAuthenticated admits requests only while the dashboard's auth gate
// is authenticated, and puts the gate user in the request context.
func RequireAuthenticated(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := st.State().Auth
			if !auth.IsAuthenticated || auth.User == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, *auth.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
