// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// Sentinel errors for storage-level uniqueness violations. Repositories
// return these; the service translates them into user-facing field errors.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already in use")
)

// FieldErrors maps an input field name to a human-readable message.
type FieldErrors map[string]string

// InputError reports one or more field-level problems with user input.
// It carries the full field error map so callers see every problem at
// once rather than just the first.
type InputError struct {
	Fields FieldErrors
}

// NewInputError creates an InputError from a field error map.
func NewInputError(fields FieldErrors) *InputError {
	return &InputError{Fields: fields}
}

// Error implements the error interface. Fields are listed in sorted
// order so the message is deterministic.
func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("bad input")
	for i, k := range keys {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, e.Fields[k])
	}
	return b.String()
}

// AuthError reports missing or invalid authentication.
type AuthError struct {
	Reason string
}

// ErrUnauthenticated is returned when an operation requires an
// authenticated identity and none is present.
var ErrUnauthenticated = &AuthError{Reason: "Unauthenticated"}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Reason
}
