// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatgraph/chatgraph/pkg/errutil"
)

func newServeTestCmd(t *testing.T, ctx context.Context, args ...string) *cobra.Command {
	t.Helper()
	configFile = ""

	cmd := NewServeCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetContext(ctx)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestRunServe_MissingConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cmd := newServeTestCmd(t, context.Background())

	err := runServeWithDeps(cmd, nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	assert.Contains(t, err.Error(), "database.url is required")
}

func TestRunServe_PoolFactoryError(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/chatgraph")
	t.Setenv("JWT_SECRET", "test-secret")

	cmd := newServeTestCmd(t, context.Background())

	deps := &ServeDeps{
		PoolFactory: func(context.Context, string) (*pgxpool.Pool, error) {
			return nil, errors.New("connection refused")
		},
	}

	err := runServeWithDeps(cmd, deps)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
}

func TestRunServe_GracefulShutdownOnContextCancel(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/chatgraph")
	t.Setenv("JWT_SECRET", "test-secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newServeTestCmd(t, ctx, "--addr", "127.0.0.1:0", "--metrics-addr", "127.0.0.1:0")

	deps := &ServeDeps{
		// Lazy pool: no connection is made until a query runs, which
		// this test never does.
		PoolFactory: func(ctx context.Context, url string) (*pgxpool.Pool, error) {
			return pgxpool.New(ctx, url)
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- runServeWithDeps(cmd, deps)
	}()

	// Let the server come up, then ask it to stop.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
