package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "auth-user-id"

// ContextWithUserID returns a context carrying the authenticated user id,
// set by the auth middleware once the session token is resolved
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext reads the authenticated user id from the request context.
// The second return value is false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
