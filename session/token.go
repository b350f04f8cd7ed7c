// Package session implements stateless sessions: a signed, short-lived token
// carried in an HttpOnly cookie, the middleware that guards protected routes,
// and the request-context helpers downstream handlers use to read the caller.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of a token and of the cookie carrying it.
const DefaultTTL = 2 * time.Hour

// ErrInvalidToken is the only failure Verify reports; it never says why a
// token was rejected.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Verifier checks a token string and returns its claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// TokenService issues and verifies HS256-signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. An empty secret is a configuration
// error; the process must not start without one.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of s that reads the time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// TTL returns the token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID, valid from now for the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("session: empty user id")
	}

	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
		// Reject signatures whose trailing base64 padding bits are non-zero.
		jwt.WithStrictDecoding(),
	)
	if err != nil || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

var _ Verifier = (*TokenService)(nil)
