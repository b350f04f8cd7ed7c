package session

import "context"

type contextKey string

const claimsContextKey contextKey = "session_claims"

// NewContext returns a copy of ctx carrying claims.
func NewContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// FromContext returns the claims stored by the session middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// UserID returns the authenticated user's id from ctx.
func UserID(ctx context.Context) (string, bool) {
	claims, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
