// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/chatgraph/chatgraph/internal/auth"
)

// NewHandler returns the HTTP handler for the GraphQL endpoint:
// bearer-token middleware wrapping the executor, with GraphiQL enabled
// for interactive exploration.
func NewHandler(schema *graphql.Schema, tokens *auth.TokenService) http.Handler {
	h := handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   true,
		GraphiQL: true,
	})
	return WithIdentity(tokens, h)
}
