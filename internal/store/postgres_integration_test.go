// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

//go:build integration

package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/chatgraph/chatgraph/internal/auth"
	authpg "github.com/chatgraph/chatgraph/internal/auth/postgres"
	"github.com/chatgraph/chatgraph/internal/chat"
	chatpg "github.com/chatgraph/chatgraph/internal/chat/postgres"
	"github.com/chatgraph/chatgraph/internal/store"
)

// setupPostgresContainer starts a PostgreSQL container, connects a
// pool, and applies all migrations.
func setupPostgresContainer() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chatgraph_test"),
		postgres.WithUsername("chatgraph"),
		postgres.WithPassword("chatgraph"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	pool, err := store.NewPool(ctx, connStr)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		return nil, nil, err
	}
	if err := migrator.Up(); err != nil {
		return nil, nil, err
	}
	if err := migrator.Close(); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		_ = container.Terminate(ctx)
	}

	return pool, cleanup, nil
}

func storedUser(username, email string) *auth.User {
	return &auth.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$06$placeholderplaceholderplace",
		ImageURL:     "https://www.gravatar.com/avatar/" + username + "?d=mp&r=pg&s=200",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

var _ = Describe("Repositories", func() {
	var pool *pgxpool.Pool
	var cleanup func()

	BeforeEach(func() {
		var err error
		pool, cleanup, err = setupPostgresContainer()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		cleanup()
	})

	Describe("UserRepository", func() {
		var repo *authpg.UserRepository

		BeforeEach(func() {
			repo = authpg.NewUserRepository(pool)
		})

		It("stores and retrieves a user", func() {
			ctx := context.Background()
			want := storedUser("alice", "alice@example.com")

			Expect(repo.Create(ctx, want)).To(Succeed())

			got, err := repo.GetByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(Equal(want.Username))
			Expect(got.Email).To(Equal(want.Email))
			Expect(got.PasswordHash).To(Equal(want.PasswordHash))
			Expect(got.ImageURL).To(Equal(want.ImageURL))
			Expect(got.CreatedAt).To(BeTemporally("~", want.CreatedAt, time.Millisecond))
		})

		It("maps a duplicate username to the sentinel", func() {
			ctx := context.Background()
			Expect(repo.Create(ctx, storedUser("alice", "alice@example.com"))).To(Succeed())

			err := repo.Create(ctx, storedUser("alice", "other@example.com"))
			Expect(err).To(MatchError(auth.ErrUsernameTaken))
		})

		It("maps a duplicate email to the sentinel", func() {
			ctx := context.Background()
			Expect(repo.Create(ctx, storedUser("alice", "alice@example.com"))).To(Succeed())

			err := repo.Create(ctx, storedUser("bob", "alice@example.com"))
			Expect(err).To(MatchError(auth.ErrEmailTaken))
		})

		It("returns ErrNotFound for unknown users", func() {
			_, err := repo.GetByUsername(context.Background(), "ghost")
			Expect(err).To(MatchError(auth.ErrNotFound))
		})

		It("lists other users ordered by username without credentials", func() {
			ctx := context.Background()
			for _, name := range []string{"carol", "alice", "bob"} {
				Expect(repo.Create(ctx, storedUser(name, name+"@example.com"))).To(Succeed())
			}

			users, err := repo.ListOthers(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Username).To(Equal("bob"))
			Expect(users[1].Username).To(Equal("carol"))
			for _, u := range users {
				Expect(u.Email).To(BeEmpty())
				Expect(u.PasswordHash).To(BeEmpty())
			}
		})
	})

	Describe("MessageRepository", func() {
		var users *authpg.UserRepository
		var repo *chatpg.MessageRepository

		BeforeEach(func() {
			ctx := context.Background()
			users = authpg.NewUserRepository(pool)
			repo = chatpg.NewMessageRepository(pool)
			for _, name := range []string{"alice", "bob", "carol"} {
				Expect(users.Create(ctx, storedUser(name, name+"@example.com"))).To(Succeed())
			}
		})

		It("stores and lists messages newest first", func() {
			ctx := context.Background()

			first := chat.NewMessage("alice", "bob", "hello")
			Expect(repo.Create(ctx, first)).To(Succeed())
			time.Sleep(time.Millisecond)
			second := chat.NewMessage("bob", "alice", "hello back")
			Expect(repo.Create(ctx, second)).To(Succeed())

			messages, err := repo.ListForUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(messages).To(HaveLen(2))
			Expect(messages[0].ID).To(Equal(second.ID))
			Expect(messages[0].Content).To(Equal("hello back"))
			Expect(messages[1].ID).To(Equal(first.ID))
		})

		It("only returns conversations involving the user", func() {
			ctx := context.Background()
			Expect(repo.Create(ctx, chat.NewMessage("bob", "carol", "private"))).To(Succeed())

			messages, err := repo.ListForUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(messages).To(BeEmpty())
		})
	})
})
