package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Weryck-Lemos/ElectroStock/internal/session"
)

// SessionCookie carries the opaque session ID; the token itself never
// reaches the browser.
const SessionCookie = "electrostock_session"

type ctxKey int

const sessionCtxKey ctxKey = iota

// SessionMiddleware resolves the cookie into a session and stores it on the
// request context. Requests without a valid session get 401; the browser
// front treats that as a redirect to the login page.
func SessionMiddleware(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "not_authenticated", "login required")
				return
			}

			sess, err := store.Get(r.Context(), cookie.Value)
			if errors.Is(err, session.ErrNotFound) {
				respondError(w, http.StatusUnauthorized, "not_authenticated", "login required")
				return
			}
			if err != nil {
				log.Printf("session store get error: %v", err)
				respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin pages on the cached role. Advisory only; the
// service re-checks on every admin call.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil || !sess.User.IsAdmin() {
			respondError(w, http.StatusForbidden, "admin_only", "restricted to administrators")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionCtxKey).(*session.Session); ok {
		return sess
	}
	return nil
}
