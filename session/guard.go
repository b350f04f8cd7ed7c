package session

import (
	"net/http"
	"strings"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/logging"
)

// GuardConfig says which paths need a session and where visitors without one go.
type GuardConfig struct {
	ProtectedPrefix string
	LoginPath       string
}

// DefaultGuardConfig protects /dashboard and everything beneath it.
var DefaultGuardConfig = GuardConfig{ProtectedPrefix: "/dashboard", LoginPath: "/login"}

// IsProtected reports whether path is the prefix itself or lies beneath it.
// "/dashboardx" is not protected by "/dashboard".
func (g GuardConfig) IsProtected(path string) bool {
	prefix := strings.TrimSuffix(g.ProtectedPrefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Guard runs in front of page routes. A request under the protected prefix
// without a verifiable session cookie is redirected to the login page; one
// with a valid session continues with the claims in its context. Other paths
// pass through untouched. There is no refresh and no retry.
func Guard(v Verifier, cookies *CookieManager, cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.IsProtected(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := cookies.Extract(r)
			if !ok {
				http.Redirect(w, r, cfg.LoginPath, http.StatusTemporaryRedirect)
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				ctx := r.Context()
				logging.FromContext(ctx).Debug(ctx, "session rejected", "path", r.URL.Path)
				http.Redirect(w, r, cfg.LoginPath, http.StatusTemporaryRedirect)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
		})
	}
}

// RequireSession is the API flavor of Guard: it answers 401 JSON instead of
// redirecting.
func RequireSession(v Verifier, cookies *CookieManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := cookies.Extract(r)
			if !ok {
				apperror.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				apperror.WriteError(w, r, apperror.NewAuthError("Authentication required", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
		})
	}
}
