package session

import (
	"net/http"
	"time"
)

// DefaultCookieName is the name of the session cookie.
const DefaultCookieName = "token"

// CookieManager writes, clears and reads the session cookie. The cookie is
// always HttpOnly, SameSite=Lax and scoped to the whole site.
type CookieManager struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// NewCookieManager returns a manager for cookie name; secure should be true in production.
func NewCookieManager(name string, secure bool, maxAge time.Duration) *CookieManager {
	if name == "" {
		name = DefaultCookieName
	}
	if maxAge <= 0 {
		maxAge = DefaultTTL
	}
	return &CookieManager{Name: name, Secure: secure, MaxAge: maxAge}
}

// Attach sets the session cookie to token.
func (c *CookieManager) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge / time.Second),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the client to drop the session cookie.
func (c *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Extract returns the session token from r, if any.
func (c *CookieManager) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
