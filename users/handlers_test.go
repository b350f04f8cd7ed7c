package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/session"
)

type profileFixture struct {
	router  http.Handler
	store   *CredentialStore
	tokens  *session.TokenService
	cookies *session.CookieManager
	user    *User
}

func newProfileFixture(t *testing.T) profileFixture {
	t.Helper()
	store, _ := newTestStore()
	tokens, err := session.NewTokenService("profile-test-secret", time.Hour)
	require.NoError(t, err)
	cookies := session.NewCookieManager("token", false, time.Hour)

	u, err := store.Create(context.Background(), "jo@example.com", testPassword, "Jo")
	require.NoError(t, err)

	h := NewHandlers(store, NewValidator(12))
	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Use(session.RequireSession(tokens, cookies))
		h.RegisterRoutes(r)
	})

	return profileFixture{router: r, store: store, tokens: tokens, cookies: cookies, user: u}
}

func (f profileFixture) do(t *testing.T, method, path, body string, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if signedIn {
		token, err := f.tokens.Issue(f.user.ID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: f.cookies.Name, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetProfile(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(t, http.MethodGet, "/api/users/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, f.user.ID, got["id"])
	assert.Equal(t, "jo@example.com", got["email"])
	assert.Equal(t, "Jo", got["firstName"])
	assert.Contains(t, got, "createdAt")
	assert.NotContains(t, got, "passwordHash")
	assert.NotContains(t, got, "password")

	rec = f.do(t, http.MethodGet, "/api/users/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetProfile_DeletedUser(t *testing.T) {
	f := newProfileFixture(t)
	f.user = &User{ID: "gone"}

	rec := f.do(t, http.MethodGet, "/api/users/me", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateProfile(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(t, http.MethodPatch, "/api/users/me", `{"firstName":"  Joanna "}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Joanna", got.FirstName)

	// The password still works after a profile change.
	_, err := f.store.Authenticate(context.Background(), "jo@example.com", testPassword)
	assert.NoError(t, err)

	rec = f.do(t, http.MethodPatch, "/api/users/me", `{"firstName":"<script>"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid characters in first name")

	rec = f.do(t, http.MethodPatch, "/api/users/me", `not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChangePassword(t *testing.T) {
	f := newProfileFixture(t)

	rec := f.do(t, http.MethodPut, "/api/users/me/password",
		`{"currentPassword":"Wrongpassword1","newPassword":"Newpassword99"}`, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Current password is incorrect")

	rec = f.do(t, http.MethodPut, "/api/users/me/password",
		`{"currentPassword":"`+testPassword+`","newPassword":"short"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "newPassword")

	rec = f.do(t, http.MethodPut, "/api/users/me/password",
		`{"currentPassword":"`+testPassword+`","newPassword":"Newpassword99"}`, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := f.store.Authenticate(context.Background(), "jo@example.com", "Newpassword99")
	assert.NoError(t, err)
}

func TestMapError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(t, MapError(ErrNotFound)))
	assert.Equal(t, http.StatusConflict, statusFor(t, MapError(ErrDuplicateEmail)))
	assert.Equal(t, http.StatusUnauthorized, statusFor(t, MapError(ErrInvalidCredentials)))
}

func statusFor(t *testing.T, err error) int {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	apperror.WriteError(rec, req, err)
	return rec.Code
}
