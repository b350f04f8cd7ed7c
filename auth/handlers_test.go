package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/session"
	"github.com/user/finstarter-go/users"
)

const (
	testSecret   = "auth-handlers-test-secret"
	testPassword = "Abcdefgh1234"
)

type fixture struct {
	router  http.Handler
	tokens  *session.TokenService
	cookies *session.CookieManager
}

func newFixture(t *testing.T, repo users.Repository, issuer TokenIssuer) fixture {
	t.Helper()
	tokens, err := session.NewTokenService(testSecret, 2*time.Hour)
	require.NoError(t, err)
	if issuer == nil {
		issuer = tokens
	}
	cookies := session.NewCookieManager("token", false, 2*time.Hour)
	validator := users.NewValidator(12)
	store := users.NewCredentialStore(repo, users.NewBcryptHasher(bcrypt.MinCost), validator)

	r := chi.NewRouter()
	r.Use(apperror.Recover)
	r.Use(session.Guard(tokens, cookies, session.DefaultGuardConfig))
	r.Route("/api/auth", NewHandlers(store, validator, issuer, cookies, "/login").RegisterRoutes)
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		id, _ := session.UserID(r.Context())
		_, _ = w.Write([]byte("hello " + id))
	})

	return fixture{router: r, tokens: tokens, cookies: cookies}
}

func (f fixture) post(t *testing.T, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f fixture) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorResponse {
	t.Helper()
	var body apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerBody(email string) string {
	return `{"email":"` + email + `","password":"` + testPassword + `","firstName":"Jo"}`
}

func TestRegister(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	rec := f.post(t, "/api/auth/register", registerBody("Jo@Example.com"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "jo@example.com", body.User.Email)
	assert.Equal(t, "Jo", body.User.FirstName)
	assert.NotContains(t, rec.Body.String(), "password")

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 7200, cookie.MaxAge)

	claims, err := f.tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, body.User.ID, claims.UserID)
}

func TestRegister_TwiceConflicts(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	rec := f.post(t, "/api/auth/register", registerBody("a@b.co"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.post(t, "/api/auth/register", registerBody("A@B.co"), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "User already exists", body.Error)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad email", `{"email":"nope","password":"Abcdefgh1234","firstName":"Jo"}`, "email"},
		{"short password", `{"email":"a@b.co","password":"Abcdefgh123","firstName":"Jo"}`, "password"},
		{"no uppercase", `{"email":"a@b.co","password":"abcdefgh1234","firstName":"Jo"}`, "password"},
		{"no digit", `{"email":"a@b.co","password":"Abcdefghijkl","firstName":"Jo"}`, "password"},
		{"bad first name", `{"email":"a@b.co","password":"Abcdefgh1234","firstName":"J0"}`, "firstName"},
		{"missing first name", `{"email":"a@b.co","password":"Abcdefgh1234"}`, "firstName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.post(t, "/api/auth/register", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			require.NotEmpty(t, body.Errors)
			assert.Equal(t, tt.field, body.Errors[0].Field)
			assert.Empty(t, rec.Result().Cookies())
		})
	}

	rec := f.post(t, "/api/auth/register", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)
	require.Equal(t, http.StatusCreated, f.post(t, "/api/auth/register", registerBody("jo@example.com"), nil).Code)

	t.Run("success", func(t *testing.T) {
		rec := f.post(t, "/api/auth/login", `{"email":"JO@example.com","password":"`+testPassword+`"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var u users.PublicUser
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		assert.Equal(t, "jo@example.com", u.Email)

		claims, err := f.tokens.Verify(sessionCookie(t, rec).Value)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := f.post(t, "/api/auth/login", `{"email":"jo@example.com","password":"Wrongpassword1"}`, nil)
		unknown := f.post(t, "/api/auth/login", `{"email":"nobody@example.com","password":"`+testPassword+`"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
		assert.Equal(t, "Invalid credentials", decodeError(t, wrong).Error)
		assert.Empty(t, wrong.Result().Cookies())
		assert.Empty(t, unknown.Result().Cookies())
	})

	t.Run("missing password", func(t *testing.T) {
		rec := f.post(t, "/api/auth/login", `{"email":"jo@example.com"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	rec := f.post(t, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	rec := f.get(t, "/dashboard", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = f.post(t, "/api/auth/register", registerBody("jo@example.com"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(t, rec)

	rec = f.get(t, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "hello "))

	rec = f.post(t, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	// A browser honoring the cleared cookie is locked out again.
	rec = f.get(t, "/dashboard", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestLogout_DoesNotRevokeCopiedToken(t *testing.T) {
	f := newFixture(t, users.NewMemoryRepository(), nil)

	rec := f.post(t, "/api/auth/register", registerBody("jo@example.com"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	copied := sessionCookie(t, rec)

	require.Equal(t, http.StatusFound, f.post(t, "/api/auth/logout", "", copied).Code)

	// Sessions are stateless: the copied token verifies until it expires.
	rec = f.get(t, "/dashboard", copied)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingIssuer struct{}

func (failingIssuer) Issue(string) (string, error) {
	return "", errors.New("signer unavailable")
}

type brokenRepo struct {
	users.Repository
}

func (brokenRepo) Insert(context.Context, *users.User) (*users.User, error) {
	return nil, errors.New("pq: connection refused to 10.0.0.5")
}

func (brokenRepo) GetByEmail(context.Context, string, bool) (*users.User, error) {
	return nil, errors.New("pq: connection refused to 10.0.0.5")
}

func TestInternalFailuresAreOpaque(t *testing.T) {
	t.Run("store failure on register", func(t *testing.T) {
		f := newFixture(t, brokenRepo{}, nil)
		rec := f.post(t, "/api/auth/register", registerBody("jo@example.com"), nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeError(t, rec).Error)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("store failure on login", func(t *testing.T) {
		f := newFixture(t, brokenRepo{}, nil)
		rec := f.post(t, "/api/auth/login", `{"email":"jo@example.com","password":"x"}`, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("token issue failure", func(t *testing.T) {
		f := newFixture(t, users.NewMemoryRepository(), failingIssuer{})
		rec := f.post(t, "/api/auth/register", registerBody("jo@example.com"), nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}
