package auth

import "context"

type ctxKey int

const userIDKey ctxKey = iota

// ContextWithUserID is used by the auth middleware once the bearer token is verified.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
