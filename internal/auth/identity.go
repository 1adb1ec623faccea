// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import "context"

// Identity is the authenticated caller, derived from a verified token.
// It exists only for the duration of request handling.
type Identity struct {
	Username string
}

type contextKey struct{}

// ContextWithIdentity returns a context carrying the identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext extracts the identity attached by the transport
// middleware. The second return value reports whether one is present;
// absence is not an error by itself, only operations that require
// authentication treat it as one.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
