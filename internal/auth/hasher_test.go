// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatgraph/chatgraph/internal/auth"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Run("zero cost selects default", func(t *testing.T) {
		hasher, err := auth.NewBcryptHasher(0)
		require.NoError(t, err)

		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, auth.DefaultBcryptCost, cost)
	})

	t.Run("rejects cost below minimum", func(t *testing.T) {
		_, err := auth.NewBcryptHasher(bcrypt.MinCost - 1)
		assert.Error(t, err)
	})

	t.Run("rejects cost above maximum", func(t *testing.T) {
		_, err := auth.NewBcryptHasher(bcrypt.MaxCost + 1)
		assert.Error(t, err)
	})
}

func TestHashPassword(t *testing.T) {
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("produces valid bcrypt hash", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects input beyond bcrypt length limit", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("x", 73))
		assert.Error(t, err)
	})
}

func TestVerifyPassword(t *testing.T) {
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("correctpassword", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("incorrect password fails without error", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrongpassword", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid hash format returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "not-a-valid-hash")
		assert.Error(t, err)
	})
}
