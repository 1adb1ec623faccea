// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import (
	"context"
	"time"
)

// User represents a registered account.
//
// Username doubles as the primary handle; it and Email are unique
// across all users. PasswordHash is never exposed through the API
// surface. ImageURL is the avatar derived from the email at
// registration time and stored as-is.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	ImageURL     string
	CreatedAt    time.Time
}

// Public returns a copy of the user with sensitive fields cleared.
// Used when a caller needs the account record without credentials.
func (u *User) Public() *User {
	pub := *u
	pub.PasswordHash = ""
	return &pub
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Uniqueness violations are reported as
	// ErrUsernameTaken or ErrEmailTaken.
	Create(ctx context.Context, user *User) error

	// GetByUsername retrieves a user by exact username match.
	// Returns ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// ListOthers retrieves all users except the given one, ordered by
	// username ascending. Only public projection fields are populated
	// (username, image URL, created-at); email and password hash are
	// never fetched here.
	ListOthers(ctx context.Context, username string) ([]*User, error)
}
