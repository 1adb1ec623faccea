// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chatgraph/chatgraph/internal/auth"
	authpg "github.com/chatgraph/chatgraph/internal/auth/postgres"
	"github.com/chatgraph/chatgraph/internal/chat"
	chatpg "github.com/chatgraph/chatgraph/internal/chat/postgres"
	"github.com/chatgraph/chatgraph/internal/config"
	"github.com/chatgraph/chatgraph/internal/graph"
	"github.com/chatgraph/chatgraph/internal/gravatar"
	"github.com/chatgraph/chatgraph/internal/logging"
	"github.com/chatgraph/chatgraph/internal/observability"
	"github.com/chatgraph/chatgraph/internal/store"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL server",
		Long: `Start the GraphQL HTTP server, serving the chat API at /graphql
with GraphiQL enabled, plus metrics and health probes on a separate
listener.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd, nil)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

// runServeWithDeps starts the server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.PoolFactory == nil {
		deps.PoolFactory = store.NewPool
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("chatgraph", version, cfg.Log.Format)

	slog.Info("starting server",
		"addr", cfg.Server.Addr,
		"log_format", cfg.Log.Format,
	)

	ctx := cmd.Context()

	pool, err := deps.PoolFactory(ctx, cfg.Database.URL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	slog.Info("connected to database")

	// Observability server is created before the resolver so GraphQL
	// operation metrics can be wired in; it only starts listening once
	// the API server is up.
	var ready atomic.Bool
	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.Server.MetricsAddr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Server.MetricsAddr, ready.Load)
		metrics = obsServer.Metrics()
	}

	handler, err := buildHandler(cfg, pool, metrics)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", handler)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if obsServer != nil {
		obsErrChan, obsErr := obsServer.Start()
		if obsErr != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(obsErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	errChan := make(chan error, 1)
	go func() {
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	ready.Store(true)

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("Server started on " + cfg.Server.Addr)
	slog.Info("server ready", "addr", cfg.Server.Addr)

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr := <-errChan:
		return oops.Code("SERVER_FAILED").With("addr", cfg.Server.Addr).Wrap(serveErr)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	// Graceful shutdown
	slog.Info("shutting down...")
	ready.Store(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("error stopping GraphQL server", "error", err)
	}

	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// buildHandler assembles the service graph: repositories, auth and
// directory services, resolver, schema, and the HTTP handler with
// bearer-token middleware.
func buildHandler(cfg config.Config, pool *pgxpool.Pool, metrics *observability.Metrics) (http.Handler, error) {
	userRepo := authpg.NewUserRepository(pool)
	messageRepo := chatpg.NewMessageRepository(pool)

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	authSvc, err := auth.NewService(userRepo, hasher, tokens, gravatar.URL)
	if err != nil {
		return nil, err
	}

	directory, err := chat.NewDirectoryService(userRepo, messageRepo)
	if err != nil {
		return nil, err
	}

	resolver, err := graph.NewResolver(authSvc, directory, slog.Default(), metrics)
	if err != nil {
		return nil, err
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, err
	}

	return graph.NewHandler(&schema, tokens), nil
}

// monitorServerErrors watches a server error channel and cancels the
// main context when one arrives.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errChan <-chan error, name string) {
	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}
