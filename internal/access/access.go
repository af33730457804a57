// Package access carries the authenticated caller identity through a request.
//
// The caller is resolved once by the auth middleware and passed explicitly to
// every operation that needs it; there is no ambient/global identity state.
package access

import (
	"context"

	"github.com/google/uuid"
)

// Caller identifies the authenticated user making a request.
type Caller struct {
	UserID uuid.UUID
	Email  string
}

type contextKey struct{}

// WithCaller returns a context carrying the caller identity.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// CallerFromContext extracts the caller set by the auth middleware.
// The second return is false when the request was not authenticated.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(contextKey{}).(Caller)
	return c, ok
}
