// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chatgraph/chatgraph/internal/auth"
	authpg "github.com/chatgraph/chatgraph/internal/auth/postgres"
	"github.com/chatgraph/chatgraph/internal/chat"
	chatpg "github.com/chatgraph/chatgraph/internal/chat/postgres"
	"github.com/chatgraph/chatgraph/internal/gravatar"
	"github.com/chatgraph/chatgraph/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// Demo account password. Seed data is for local development only.
const seedPassword = "password"

// Fixed message IDs so repeated seed runs fail the primary key instead
// of inserting duplicates. ULIDs must be exactly 26 Crockford base32
// characters.
var seedMessageIDs = []string{
	"01J0000000000000000000000A",
	"01J0000000000000000000000B",
	"01J0000000000000000000000C",
}

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo users and messages",
		Long: `Creates demo accounts (alice, bob, carol) and a short conversation
for local development. This command is idempotent - it will not create
duplicates if run multiple times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	databaseURL := databaseURLFromEnv()
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}

	// Add timeout to prevent indefinite hangs
	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := store.NewPool(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	cmd.Println("Running migrations...")
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("error closing migrator", "error", closeErr)
		}
	}()
	if err := migrator.Up(); err != nil {
		return err
	}

	hasher, err := auth.NewBcryptHasher(0)
	if err != nil {
		return err
	}

	userRepo := authpg.NewUserRepository(pool)
	created := 0
	for _, name := range []string{"alice", "bob", "carol"} {
		hash, hashErr := hasher.Hash(seedPassword)
		if hashErr != nil {
			return hashErr
		}

		email := name + "@example.com"
		user := &auth.User{
			Username:     name,
			Email:        email,
			PasswordHash: hash,
			ImageURL:     gravatar.URL(email),
			CreatedAt:    time.Now().UTC(),
		}
		if createErr := userRepo.Create(ctx, user); createErr != nil {
			if errors.Is(createErr, auth.ErrUsernameTaken) || errors.Is(createErr, auth.ErrEmailTaken) {
				slog.Info("seed user already exists, skipping", "username", name)
				continue
			}
			return oops.Code("SEED_FAILED").With("operation", "create user").With("username", name).Wrap(createErr)
		}
		created++
	}
	cmd.Printf("Created %d demo user(s)\n", created)

	messageRepo := chatpg.NewMessageRepository(pool)
	conversation := []struct {
		from, to, content string
	}{
		{"alice", "bob", "Hey bob, welcome aboard!"},
		{"bob", "alice", "Thanks! Glad to be here."},
		{"carol", "alice", "Lunch later?"},
	}

	base := time.Now().UTC().Add(-time.Hour)
	seeded := 0
	for i, m := range conversation {
		id, parseErr := ulid.Parse(seedMessageIDs[i])
		if parseErr != nil {
			return oops.Code("SEED_FAILED").With("operation", "parse seed message ID").Wrap(parseErr)
		}
		msg := &chat.Message{
			ID:        id,
			From:      m.from,
			To:        m.to,
			Content:   m.content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if createErr := messageRepo.Create(ctx, msg); createErr != nil {
			var pgErr *pgconn.PgError
			if errors.As(createErr, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				slog.Info("seed message already exists, skipping", "message_id", id)
				continue
			}
			return oops.Code("SEED_FAILED").With("operation", "create message").Wrap(createErr)
		}
		seeded++
	}
	cmd.Printf("Created %d demo message(s)\n", seeded)

	slog.Info("seed complete", "users", created, "messages", seeded)
	return nil
}
