// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"net/http"
	"strings"

	"github.com/chatgraph/chatgraph/internal/auth"
)

// WithIdentity returns middleware that verifies a bearer token from the
// Authorization header and attaches the resulting identity to the
// request context. A missing or invalid token leaves the request
// anonymous; only operations that require authentication reject it.
func WithIdentity(tokens *auth.TokenService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if identity, err := tokens.Verify(token); err == nil {
				r = r.WithContext(auth.ContextWithIdentity(r.Context(), identity))
			}
		}
		next.ServeHTTP(w, r)
	})
}
