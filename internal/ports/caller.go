package ports

import "context"

// Caller identifies the session on whose behalf a backend call is made. The
// transport reads it from the request context to attach the bearer token and
// to report credential rejections against the right session.
type Caller struct {
	SessionID string
	Token     string
	UserID    int64
}

type callerKey struct{}

// WithCaller attaches the caller identity to the context.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext extracts the caller identity, if present.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}
