// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package postgres implements chat repositories using PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/chatgraph/chatgraph/internal/chat"
)

// db is the subset of pgxpool.Pool used by the repository. Declared as
// an interface so tests can substitute a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MessageRepository implements chat.MessageRepository using PostgreSQL.
type MessageRepository struct {
	pool db
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool db) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create stores a new message.
func (r *MessageRepository) Create(ctx context.Context, msg *chat.Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (id, from_username, to_username, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		msg.ID.String(),
		msg.From,
		msg.To,
		msg.Content,
		msg.CreatedAt,
	)
	if err != nil {
		return oops.Code("MESSAGE_CREATE_FAILED").
			With("operation", "insert message").
			With("id", msg.ID.String()).
			Wrap(err)
	}
	return nil
}

// ListForUser retrieves all messages sent or received by the user,
// ordered most recent first with id as the tie-break.
func (r *MessageRepository) ListForUser(ctx context.Context, username string) ([]*chat.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, from_username, to_username, content, created_at
		FROM messages
		WHERE from_username = $1 OR to_username = $1
		ORDER BY created_at DESC, id DESC
	`, username)
	if err != nil {
		return nil, oops.Code("MESSAGE_LIST_FAILED").
			With("operation", "list messages for user").
			With("username", username).
			Wrap(err)
	}
	defer rows.Close()

	var messages []*chat.Message
	for rows.Next() {
		var (
			idStr     string
			from      string
			to        string
			content   string
			createdAt time.Time
		)
		if err := rows.Scan(&idStr, &from, &to, &content, &createdAt); err != nil {
			return nil, oops.Code("MESSAGE_LIST_FAILED").
				With("operation", "scan message row").
				Wrap(err)
		}
		id, err := ulid.Parse(idStr)
		if err != nil {
			return nil, oops.Code("MESSAGE_INVALID_ID").
				With("operation", "parse message id").
				With("id", idStr).
				Wrap(err)
		}
		messages = append(messages, &chat.Message{
			ID:        id,
			From:      from,
			To:        to,
			Content:   content,
			CreatedAt: createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("MESSAGE_LIST_FAILED").
			With("operation", "iterate message rows").
			Wrap(err)
	}
	return messages, nil
}

// Compile-time interface check.
var _ chat.MessageRepository = (*MessageRepository)(nil)
