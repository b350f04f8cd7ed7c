package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/logging"
	"github.com/user/finstarter-go/session"
)

// Handlers serves the signed-in user's profile. Every route expects the
// session middleware to have run.
type Handlers struct {
	store     *CredentialStore
	validator *Validator
}

// NewHandlers creates profile handlers over store.
func NewHandlers(store *CredentialStore, validator *Validator) *Handlers {
	return &Handlers{store: store, validator: validator}
}

// RegisterRoutes mounts the profile routes on router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/me", h.HandleGetProfile())
	router.Patch("/me", h.HandleUpdateProfile())
	router.Put("/me/password", h.HandleChangePassword())
}

// HandleGetProfile godoc
// @Summary Get current user's profile
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse "No valid session"
// @Failure 404 {object} apperror.ErrorResponse "User no longer exists"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/users/me [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := session.UserID(r.Context())
		if !ok {
			apperror.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
			return
		}

		u, err := h.store.FindByID(r.Context(), userID)
		if err != nil {
			apperror.WriteError(w, r, MapError(err))
			return
		}

		apperror.WriteJSON(w, http.StatusOK, newProfileResponse(u))
	}
}

// HandleUpdateProfile godoc
// @Summary Update current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body users.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} users.PublicUser
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "No valid session"
// @Failure 404 {object} apperror.ErrorResponse "User no longer exists"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/users/me [patch]
func (h *Handlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := session.UserID(r.Context())
		if !ok {
			apperror.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
			return
		}

		var req UpdateProfileRequest
		if err := apperror.DecodeJSON(w, r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		req.FirstName = strings.TrimSpace(req.FirstName)
		if err := h.validator.Struct(req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		u, err := h.store.UpdateProfile(r.Context(), userID, req.FirstName)
		if err != nil {
			apperror.WriteError(w, r, MapError(err))
			return
		}

		apperror.WriteJSON(w, http.StatusOK, u.Public())
	}
}

// HandleChangePassword godoc
// @Summary Change current user's password
// @Description Requires the current password. Existing sessions stay valid until they expire.
// @Tags users
// @Accept json
// @Security CookieAuth
// @Param body body users.ChangePasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "No valid session or wrong current password"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/users/me/password [put]
func (h *Handlers) HandleChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, ok := session.UserID(ctx)
		if !ok {
			apperror.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
			return
		}

		var req ChangePasswordRequest
		if err := apperror.DecodeJSON(w, r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		if err := h.validator.Struct(req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		err := h.store.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
		if errors.Is(err, ErrInvalidCredentials) {
			apperror.WriteError(w, r, apperror.NewAuthError("Current password is incorrect", nil))
			return
		}
		if err != nil {
			apperror.WriteError(w, r, MapError(err))
			return
		}

		logging.FromContext(ctx).Info(ctx, "password changed", "user_id", userID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// MapError translates credential store errors into API errors. Errors that
// are already *apperror.AppError pass through; anything unknown stays
// unclassified and is rendered as an opaque 500.
func MapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperror.NewNotFoundError("User not found", err)
	case errors.Is(err, ErrDuplicateEmail):
		return apperror.NewConflictError("email", "User already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return apperror.NewAuthError("Invalid credentials", err)
	default:
		return err
	}
}
