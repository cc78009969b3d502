package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Route prefixes known to the guard.
const (
	LoginPath     = "/auth/login"
	SSOPath       = "/auth/sso"
	ProtectedPath = "/pages"
	RootPath      = "/"
)

type sessionContextKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext returns the session placed by Guard.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(Session)
	return sess, ok
}

// Guard redirects requests that lack the auth cookies required by their path:
// the root goes to login, login goes to SSO selection once authenticated, SSO
// requires token and SSO data, and protected pages require all three cookies.
// Cookies that fail their signature check count as unreadable.
func Guard(logger *slog.Logger, cookies *Cookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			presence := ReadPresence(r)
			authenticated := presence.JWT && presence.SSO
			complete := authenticated && presence.User

			switch {
			case path == RootPath:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			case strings.HasPrefix(path, LoginPath):
				if authenticated {
					http.Redirect(w, r, SSOPath, http.StatusSeeOther)
					return
				}
			case strings.HasPrefix(path, SSOPath):
				if !authenticated {
					http.Redirect(w, r, LoginPath, http.StatusSeeOther)
					return
				}
			case strings.HasPrefix(path, ProtectedPath):
				if !complete {
					http.Redirect(w, r, LoginPath, http.StatusSeeOther)
					return
				}
			}

			if presence.JWT || presence.SSO || presence.User {
				sess, err := cookies.Read(r)
				if err != nil {
					if logger != nil {
						logger.Warn("auth cookies unreadable", slog.Any("error", err))
					}
					if strings.HasPrefix(path, ProtectedPath) {
						http.Redirect(w, r, LoginPath, http.StatusSeeOther)
						return
					}
				} else {
					r = r.WithContext(WithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
