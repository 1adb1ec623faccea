// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import "strings"

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the raw login form.
type LoginInput struct {
	Username string
	Password string
}

// Validate checks field presence and password agreement. All rules run
// and every failure is collected, so the caller sees the complete
// picture in one pass.
//
// The mismatch rule compares the untrimmed values and runs after the
// emptiness rules, so a non-empty password with an empty confirmation
// reports "Passwords must match" rather than the emptiness message.
func (in RegisterInput) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "Username must not be empty"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "Email must not be empty"
	}
	if strings.TrimSpace(in.Password) == "" {
		errs["password"] = "Password must not be empty"
	}
	if strings.TrimSpace(in.ConfirmPassword) == "" {
		errs["confirmPassword"] = "Confirm password must not be empty"
	}
	if in.Password != in.ConfirmPassword {
		errs["confirmPassword"] = "Passwords must match"
	}

	return errs
}

// Validate checks field presence. Collect-all, same trim rule as
// registration.
func (in LoginInput) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "Username must not be empty"
	}
	if strings.TrimSpace(in.Password) == "" {
		errs["password"] = "Password must not be empty"
	}

	return errs
}
