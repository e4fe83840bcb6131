package utils

import "context"

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	UserMobileKey contextKey = "mobile"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id uint, mobile string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserMobileKey, mobile)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

// GetUserMobileFromContext retrieves the user's mobile number safely
func GetUserMobileFromContext(ctx context.Context) string {
	mobile, _ := ctx.Value(UserMobileKey).(string)
	return mobile
}
