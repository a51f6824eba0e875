// ABOUTME: Session context for tracking identity through request handlers
// ABOUTME: Provides WithSession/FromContext for propagating auth info via context

package auth

import (
	"context"
	"time"
)

// Session holds the authenticated identity extracted from a request's token.
// It is populated by the edge gate and can be retrieved from context in
// downstream handlers.
type Session struct {
	Username  string    // token subject
	ExpiresAt time.Time // token expiry instant
}

// sessionContextKey is the key type for storing Session in context.Context.
type sessionContextKey struct{}

// WithSession returns a new context with the Session attached.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext retrieves the Session from the context, returning nil if not present.
func FromContext(ctx context.Context) *Session {
	val := ctx.Value(sessionContextKey{})
	if val == nil {
		return nil
	}
	s, ok := val.(*Session)
	if !ok {
		return nil
	}
	return s
}
