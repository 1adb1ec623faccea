// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// AvatarFunc derives an avatar URL from an email address.
type AvatarFunc func(email string) string

// Service orchestrates registration and login.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenService
	avatar AvatarFunc
}

// NewService creates a Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenService, avatar AvatarFunc) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token service is required")
	}
	if avatar == nil {
		return nil, oops.Errorf("avatar func is required")
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, avatar: avatar}, nil
}

// Register validates the input, hashes the credential, derives the
// avatar URL and creates the user. Storage uniqueness violations are
// translated into field errors; there is deliberately no pre-check
// query, so the unique constraints stay the single source of truth
// under concurrent duplicate registrations.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, NewInputError(errs)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		// Hashing failures indicate a programming error, not bad user
		// input; propagate untranslated.
		return nil, err
	}

	user := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		ImageURL:     s.avatar(in.Email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return nil, NewInputError(FieldErrors{"username": "This username is already taken."})
		case errors.Is(err, ErrEmailTaken):
			return nil, NewInputError(FieldErrors{"email": "Email address already in use!"})
		default:
			return nil, oops.Code("AUTH_REGISTER_FAILED").
				With("username", in.Username).
				Wrap(err)
		}
	}

	return user, nil
}

// Login validates the input, verifies the credential and issues an
// identity token. The returned user carries only public fields.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, string, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, "", NewInputError(errs)
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", NewInputError(FieldErrors{"username": "User not found"})
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !ok {
		return nil, "", NewInputError(FieldErrors{"password": "Password is incorrect"})
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return user.Public(), token, nil
}
