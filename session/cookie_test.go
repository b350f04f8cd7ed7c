package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieManager_Attach(t *testing.T) {
	for _, secure := range []bool{false, true} {
		c := NewCookieManager("", secure, 2*time.Hour)
		rec := httptest.NewRecorder()
		c.Attach(rec, "abc")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		got := cookies[0]
		assert.Equal(t, DefaultCookieName, got.Name)
		assert.Equal(t, "abc", got.Value)
		assert.Equal(t, "/", got.Path)
		assert.Equal(t, 7200, got.MaxAge)
		assert.True(t, got.HttpOnly)
		assert.Equal(t, secure, got.Secure)
		assert.Equal(t, http.SameSiteLaxMode, got.SameSite)
	}
}

func TestCookieManager_Clear(t *testing.T) {
	c := NewCookieManager("token", false, time.Hour)
	rec := httptest.NewRecorder()
	c.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestCookieManager_Extract(t *testing.T) {
	c := NewCookieManager("token", false, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := c.Extract(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: "other", Value: "x"})
	_, ok = c.Extract(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	token, ok := c.Extract(r)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}
