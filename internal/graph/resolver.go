// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/samber/oops"

	"github.com/chatgraph/chatgraph/internal/auth"
	"github.com/chatgraph/chatgraph/internal/chat"
	"github.com/chatgraph/chatgraph/internal/observability"
	"github.com/chatgraph/chatgraph/pkg/errutil"
)

// Resolver implements the GraphQL operations on top of the auth and
// chat services. Errors are logged exactly once here, at the transport
// boundary, then handed to presentError for the client.
type Resolver struct {
	auth      *auth.Service
	directory *chat.DirectoryService
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewResolver creates a Resolver. logger and metrics may be nil; the
// default logger is used and metric recording becomes a no-op.
func NewResolver(authSvc *auth.Service, directory *chat.DirectoryService, logger *slog.Logger, metrics *observability.Metrics) (*Resolver, error) {
	if authSvc == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if directory == nil {
		return nil, oops.Errorf("directory service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{auth: authSvc, directory: directory, logger: logger, metrics: metrics}, nil
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (any, error) {
	start := time.Now()
	in := auth.RegisterInput{
		Username:        stringArg(p, "username"),
		Email:           stringArg(p, "email"),
		Password:        stringArg(p, "password"),
		ConfirmPassword: stringArg(p, "confirmPassword"),
	}

	user, err := r.auth.Register(p.Context, in)
	if err != nil {
		return nil, r.fail("register", "registration failed", err, start)
	}

	r.metrics.RecordOperation("register", "ok", time.Since(start))
	return newUserView(user, ""), nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (any, error) {
	start := time.Now()
	in := auth.LoginInput{
		Username: stringArg(p, "username"),
		Password: stringArg(p, "password"),
	}

	user, token, err := r.auth.Login(p.Context, in)
	if err != nil {
		return nil, r.fail("login", "login failed", err, start)
	}

	r.metrics.RecordOperation("login", "ok", time.Since(start))
	return newUserView(user, token), nil
}

func (r *Resolver) resolveGetUsers(p graphql.ResolveParams) (any, error) {
	start := time.Now()

	identity, ok := auth.IdentityFromContext(p.Context)
	if !ok {
		return nil, r.fail("getUsers", "unauthenticated directory request", auth.ErrUnauthenticated, start)
	}

	entries, err := r.directory.ListOthers(p.Context, identity.Username)
	if err != nil {
		return nil, r.fail("getUsers", "directory query failed", err, start)
	}

	r.metrics.RecordOperation("getUsers", "ok", time.Since(start))
	return newDirectoryView(entries), nil
}

// fail logs the error, records the failed operation, and returns the
// client-facing form.
func (r *Resolver) fail(operation, msg string, err error, start time.Time) error {
	errutil.LogError(r.logger, msg, err)
	r.metrics.RecordOperation(operation, "error", time.Since(start))
	return presentError(err)
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}
