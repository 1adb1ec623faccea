// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
// There is no refresh mechanism; expiry requires a fresh login.
const DefaultTokenTTL = time.Hour

// Claims is the JWT claims structure carried by identity tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The signing secret must be
// supplied by configuration; an empty secret is rejected so a missing
// configuration value cannot silently produce forgeable tokens.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, oops.Code("AUTH_SECRET_MISSING").Errorf("token signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the username claim, expiring after the
// configured TTL.
func (t *TokenService) Issue(username string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it
// carries. Fails on bad signatures, wrong algorithms, and expiry.
func (t *TokenService) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, oops.Code("AUTH_TOKEN_INVALID").Wrap(err)
	}
	if !token.Valid || claims.Username == "" {
		return Identity{}, oops.Code("AUTH_TOKEN_INVALID").Errorf("token is invalid")
	}

	return Identity{Username: claims.Username}, nil
}
