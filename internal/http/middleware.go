// Package httpx provides the gateway's HTTP surface: route registration,
// session-guarded middleware, and the server-rendered screens.
package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// Paths the guards redirect to. Unauthenticated requests land on the login
// screen; authenticated requests without the required role land on the
// dashboard every role can see.
const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver loads the session behind a cookie value.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domainauth.Session, error)
}

// GuardOptions configures the session guards.
type GuardOptions struct {
	Sessions   SessionResolver
	CookieName string
}

// RequireRoles returns a middleware that admits only authenticated sessions
// holding one of the given roles. An empty role list admits any
// authenticated session. The check runs on every request, so a role change
// or forced logout takes effect on the next navigation.
func RequireRoles(opts GuardOptions, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := resolveSession(r, opts)
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			if !sess.HasAnyRole(roles...) {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}

			ctx := SetSessionInContext(r.Context(), &sess)
			ctx = ports.WithCaller(ctx, ports.Caller{
				SessionID: sess.ID,
				Token:     sess.Token,
				UserID:    sess.User.ID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectIfAuthenticated keeps signed-in users off the login and
// registration screens.
func RedirectIfAuthenticated(opts GuardOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := resolveSession(r, opts); ok {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveSession reads the session cookie and loads its record. Any failure
// along the way reads as "no session".
func resolveSession(r *http.Request, opts GuardOptions) (domainauth.Session, bool) {
	cookie, err := r.Cookie(opts.CookieName)
	if err != nil || cookie.Value == "" {
		return domainauth.Session{}, false
	}
	sess, err := opts.Sessions.Resolve(r.Context(), cookie.Value)
	if err != nil || !sess.IsAuthenticated() {
		return domainauth.Session{}, false
	}
	return sess, true
}
