// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package graph exposes the application services over GraphQL: the
// schema, resolvers, error presentation, and the HTTP handler with
// bearer-token middleware.
package graph
