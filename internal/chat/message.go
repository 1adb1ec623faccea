// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package chat provides the message model and the user directory query.
package chat

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Message is a direct message between two users. Messages are
// immutable once created; there is no update or delete path.
type Message struct {
	ID        ulid.ULID
	From      string
	To        string
	Content   string
	CreatedAt time.Time
}

// NewMessage creates a Message with a fresh ULID and timestamp.
func NewMessage(from, to, content string) *Message {
	return &Message{
		ID:        ulid.Make(),
		From:      from,
		To:        to,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// MessageRepository manages message persistence.
type MessageRepository interface {
	// Create stores a new message.
	Create(ctx context.Context, msg *Message) error

	// ListForUser retrieves all messages the user sent or received,
	// most recent first. Equal timestamps tie-break on id descending;
	// ULIDs are time-ordered, so the ordering stays
	// newest-first deterministic.
	ListForUser(ctx context.Context, username string) ([]*Message, error)
}
