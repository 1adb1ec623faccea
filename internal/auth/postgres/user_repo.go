// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/chatgraph/chatgraph/internal/auth"
)

// db is the subset of pgxpool.Pool used by the repository. Declared as
// an interface so tests can substitute a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Unique constraint names from the initial migration. Violations are
// mapped back to the field that caused them.
const (
	usernameConstraint = "users_pkey"
	emailConstraint    = "users_email_key"
)

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	pool db
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool db) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create stores a new user. Unique violations surface as the sentinel
// errors for the violating field; every other failure is wrapped.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ImageURL,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case usernameConstraint:
				return auth.ErrUsernameTaken
			case emailConstraint:
				return auth.ErrEmailTaken
			}
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}
	return nil
}

// GetByUsername retrieves a user by exact username match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT username, email, password_hash, image_url, created_at
		FROM users
		WHERE username = $1
	`, username)

	var user auth.User
	err := row.Scan(&user.Username, &user.Email, &user.PasswordHash, &user.ImageURL, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return &user, nil
}

// ListOthers retrieves the public projection of all users except the
// given one, ordered by username for deterministic results.
func (r *UserRepository) ListOthers(ctx context.Context, username string) ([]*auth.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT username, image_url, created_at
		FROM users
		WHERE username <> $1
		ORDER BY username
	`, username)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list other users").
			With("username", username).
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		var (
			name      string
			imageURL  string
			createdAt time.Time
		)
		if err := rows.Scan(&name, &imageURL, &createdAt); err != nil {
			return nil, oops.Code("USER_LIST_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, &auth.User{
			Username:  name,
			ImageURL:  imageURL,
			CreatedAt: createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "iterate user rows").
			Wrap(err)
	}
	return users, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
