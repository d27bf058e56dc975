package auth

import "context"

type (
	key byte
)

var (
	callerKey = key(1)
)

// WithCaller returns a context that identifies id as the authenticated user
func WithCaller(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, callerKey, id)
}

// Caller returns the authenticated user bound to ctx, if any
func Caller(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerKey).(int64)
	return id, ok
}
