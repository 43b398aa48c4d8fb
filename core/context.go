package core

import "context"

// contextKey is an unexported type for context keys to prevent
// collisions with other packages.
type contextKey int

const userKey contextKey = iota

var errUserNotInContext = NewAuthError(ErrorCodeUnknownError, "no authenticated user in context", nil, 0)

// SetUser stores the authenticated user in the context. Adapters call
// this after a successful verification so downstream handlers can read
// the resolved identity.
func SetUser(ctx context.Context, user *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(userKey).(*AuthenticatedUser)
	return user, ok
}

// MustUserFromContext retrieves the authenticated user or panics. Use
// only in handlers that always run behind a required-auth adapter.
func MustUserFromContext(ctx context.Context) *AuthenticatedUser {
	user, ok := UserFromContext(ctx)
	if !ok {
		panic(errUserNotInContext)
	}
	return user
}
