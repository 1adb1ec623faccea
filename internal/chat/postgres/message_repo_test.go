// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatgraph/chatgraph/internal/chat"
)

func TestMessageRepository_Create(t *testing.T) {
	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		msg := &chat.Message{
			ID:        ulid.Make(),
			From:      "alice",
			To:        "bob",
			Content:   "hello",
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		}

		mock.ExpectExec(`INSERT INTO messages`).
			WithArgs(msg.ID.String(), "alice", "bob", "hello", msg.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewMessageRepository(mock)
		require.NoError(t, repo.Create(context.Background(), msg))

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO messages`).
			WillReturnError(errors.New("connection refused"))

		repo := NewMessageRepository(mock)
		err = repo.Create(context.Background(), &chat.Message{ID: ulid.Make()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestMessageRepository_ListForUser(t *testing.T) {
	t.Run("returns messages newest first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		newer := ulid.Make()
		older := ulid.Make()
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		rows := pgxmock.NewRows([]string{"id", "from_username", "to_username", "content", "created_at"}).
			AddRow(newer.String(), "bob", "alice", "second", base.Add(time.Minute)).
			AddRow(older.String(), "alice", "bob", "first", base)
		mock.ExpectQuery(`SELECT id, from_username, to_username, content, created_at`).
			WithArgs("alice").
			WillReturnRows(rows)

		repo := NewMessageRepository(mock)
		messages, err := repo.ListForUser(context.Background(), "alice")
		require.NoError(t, err)

		require.Len(t, messages, 2)
		assert.Equal(t, newer, messages[0].ID)
		assert.Equal(t, "second", messages[0].Content)
		assert.Equal(t, older, messages[1].ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no messages", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, from_username, to_username, content, created_at`).
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows([]string{"id", "from_username", "to_username", "content", "created_at"}))

		repo := NewMessageRepository(mock)
		messages, err := repo.ListForUser(context.Background(), "alice")
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("malformed id fails the scan", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "from_username", "to_username", "content", "created_at"}).
			AddRow("not-a-ulid", "alice", "bob", "hello", time.Now().UTC())
		mock.ExpectQuery(`SELECT id, from_username, to_username, content, created_at`).
			WithArgs("alice").
			WillReturnRows(rows)

		repo := NewMessageRepository(mock)
		_, err = repo.ListForUser(context.Background(), "alice")
		require.Error(t, err)
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, from_username, to_username, content, created_at`).
			WithArgs("alice").
			WillReturnError(errors.New("connection refused"))

		repo := NewMessageRepository(mock)
		_, err = repo.ListForUser(context.Background(), "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
