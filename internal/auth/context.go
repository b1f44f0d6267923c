package auth

import "context"

type contextKey struct{}

// ContextWithIdentity returns a context carrying the given identity.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext returns the identity attached to ctx, or nil when the
// request was not authenticated. Handlers for mutation routes must treat nil
// as an authorization failure; page handlers render an anonymous view.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(contextKey{}).(*Identity)
	return identity
}
