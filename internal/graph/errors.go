// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"errors"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/chatgraph/chatgraph/internal/auth"
)

// GraphQL extension codes, matching the Apollo conventions clients
// already handle.
const (
	codeBadUserInput    = "BAD_USER_INPUT"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

// presentedError is an error enriched with GraphQL extensions. The
// executor picks the extensions up through gqlerrors.ExtendedError.
type presentedError struct {
	message    string
	extensions map[string]any
}

var _ gqlerrors.ExtendedError = (*presentedError)(nil)

func (e *presentedError) Error() string { return e.message }

func (e *presentedError) Extensions() map[string]any { return e.extensions }

// presentError translates a domain error into its client-facing form.
// Field errors keep their full map under extensions.errors; everything
// that is not a known client fault collapses to an opaque internal
// error so storage and crypto details never leak.
func presentError(err error) error {
	var inputErr *auth.InputError
	if errors.As(err, &inputErr) {
		fields := make(map[string]any, len(inputErr.Fields))
		for k, v := range inputErr.Fields {
			fields[k] = v
		}
		return &presentedError{
			message: "Bad input",
			extensions: map[string]any{
				"code":   codeBadUserInput,
				"errors": fields,
			},
		}
	}

	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return &presentedError{
			message:    authErr.Reason,
			extensions: map[string]any{"code": codeUnauthenticated},
		}
	}

	return &presentedError{
		message:    "Internal server error",
		extensions: map[string]any{"code": codeInternal},
	}
}
