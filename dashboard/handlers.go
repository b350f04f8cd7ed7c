// Package dashboard serves the protected landing page data. It sits behind
// the session guard and is the reference for building signed-in features.
package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/logging"
	"github.com/user/finstarter-go/session"
	"github.com/user/finstarter-go/users"
)

// UserFinder loads the signed-in user's public record.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

// Viewer is the personalised part of the page.
type Viewer struct {
	FirstName   string `json:"firstName"`
	Email       string `json:"email"`
	MemberSince string `json:"memberSince"`
}

// Response is the dashboard payload.
type Response struct {
	Greeting string  `json:"greeting"`
	User     Viewer  `json:"user"`
	Widgets  Widgets `json:"widgets"`
}

// Handler renders the dashboard for the session in the request context.
type Handler struct {
	users     UserFinder
	cookies   *session.CookieManager
	loginPath string
}

// NewHandler creates the dashboard handler.
func NewHandler(finder UserFinder, cookies *session.CookieManager, loginPath string) *Handler {
	return &Handler{users: finder, cookies: cookies, loginPath: loginPath}
}

// HandleDashboard godoc
// @Summary Dashboard
// @Description Protected page data. Visitors without a valid session are redirected to the login page.
// @Tags dashboard
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dashboard.Response
// @Success 307 "Redirect to the login page"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /dashboard [get]
func (h *Handler) HandleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, ok := session.UserID(ctx)
		if !ok {
			http.Redirect(w, r, h.loginPath, http.StatusTemporaryRedirect)
			return
		}

		u, err := h.users.FindByID(ctx, userID)
		if errors.Is(err, users.ErrNotFound) {
			// Valid token for an account that no longer exists.
			logging.FromContext(ctx).Warn(ctx, "session for unknown user", "user_id", userID)
			h.cookies.Clear(w)
			http.Redirect(w, r, h.loginPath, http.StatusTemporaryRedirect)
			return
		}
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusOK, Response{
			Greeting: "Welcome to Your Dashboard, " + u.FirstName + "!",
			User: Viewer{
				FirstName:   u.FirstName,
				Email:       u.Email,
				MemberSince: formatLongDate(u.CreatedAt),
			},
			Widgets: SampleWidgets(),
		})
	}
}
