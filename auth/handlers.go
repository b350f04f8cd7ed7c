package auth

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/logging"
	"github.com/user/finstarter-go/session"
	"github.com/user/finstarter-go/users"
)

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Handlers serves the auth endpoints. They share one shape: decode,
// validate, call the credential store, then issue and attach the session.
type Handlers struct {
	store     *users.CredentialStore
	validator *users.Validator
	tokens    TokenIssuer
	cookies   *session.CookieManager
	loginPath string
}

// NewHandlers creates auth handlers. loginPath is where a browser logout lands.
func NewHandlers(store *users.CredentialStore, validator *users.Validator, tokens TokenIssuer, cookies *session.CookieManager, loginPath string) *Handlers {
	return &Handlers{
		store:     store,
		validator: validator,
		tokens:    tokens,
		cookies:   cookies,
		loginPath: loginPath,
	}
}

// RegisterRoutes mounts the auth routes on router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.HandleRegister())
	router.Post("/login", h.HandleLogin())
	router.Post("/logout", h.HandleLogout())
}

// HandleRegister godoc
// @Summary User Registration
// @Description Creates an account and signs the new user in by setting the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.RegisterResponse "User created, session cookie set"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input, one entry per failing field"
// @Failure 409 {object} apperror.ErrorResponse "User already exists"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req RegisterRequest
		if err := apperror.DecodeJSON(w, r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		req.Email = users.NormalizeEmail(req.Email)
		req.FirstName = strings.TrimSpace(req.FirstName)
		if err := h.validator.Struct(req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		u, err := h.store.Create(ctx, req.Email, req.Password, req.FirstName)
		if err != nil {
			apperror.WriteError(w, r, users.MapError(err))
			return
		}

		if !h.startSession(w, r, u.ID) {
			return
		}

		logging.FromContext(ctx).Info(ctx, "user registered", "user_id", u.ID)
		apperror.WriteJSON(w, http.StatusCreated, RegisterResponse{Success: true, User: u.Public()})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Checks credentials and sets the session cookie. Unknown email and wrong password are indistinguishable.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.LoginRequest true "Credentials"
// @Success 200 {object} users.PublicUser "Signed in, session cookie set"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req LoginRequest
		if err := apperror.DecodeJSON(w, r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		req.Email = users.NormalizeEmail(req.Email)
		if err := h.validator.Struct(req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		u, err := h.store.Authenticate(ctx, req.Email, req.Password)
		if errors.Is(err, users.ErrInvalidCredentials) {
			logging.FromContext(ctx).Debug(ctx, "login rejected")
			apperror.WriteError(w, r, apperror.NewAuthError("Invalid credentials", nil))
			return
		}
		if err != nil {
			apperror.WriteError(w, r, users.MapError(err))
			return
		}

		if !h.startSession(w, r, u.ID) {
			return
		}

		logging.FromContext(ctx).Info(ctx, "user logged in", "user_id", u.ID)
		apperror.WriteJSON(w, http.StatusOK, u.Public())
	}
}

// HandleLogout godoc
// @Summary User Logout
// @Description Deletes the session cookie. The token itself stays valid until it expires.
// @Tags auth
// @Produce json
// @Success 200 {object} auth.SuccessResponse "When the client accepts JSON"
// @Success 302 "Redirect to the login page"
// @Router /api/auth/logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.cookies.Clear(w)

		if acceptsJSON(r) {
			apperror.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
			return
		}
		http.Redirect(w, r, h.loginPath, http.StatusFound)
	}
}

// startSession issues a token for userID and attaches it. On failure it has
// already written the error response and returns false.
func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, userID string) bool {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		apperror.WriteError(w, r, apperror.NewInternalError("issue session token", err))
		return false
	}
	h.cookies.Attach(w, token)
	return true
}

func acceptsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}
