package middleware

import (
	"context"
	"net/http"

	"github.com/mwilde/quill/internal/auth"
	"github.com/mwilde/quill/internal/models"
)

type ctxKey int

const userKey ctxKey = 0

// UserFrom returns the authenticated user attached by WithUser, or nil
// for an anonymous request.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUser resolves the session cookie and attaches the current user to
// the request context. Anonymous requests pass through with no user;
// this middleware never blocks.
func WithUser(cookies *auth.CookieCodec, sessions auth.Sessions, users auth.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := cookies.Read(r)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := sessions.Get(r.Context(), sid)
			if err != nil || userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || user == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects anonymous requests to the login form. It relies
// on WithUser having run first.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
