// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"time"

	"github.com/chatgraph/chatgraph/internal/auth"
	"github.com/chatgraph/chatgraph/internal/chat"
)

// UserView is the GraphQL projection of a user. Pointer fields render
// as null when absent: email is only populated by register and login,
// token only by login, latestMessage only by the directory query.
type UserView struct {
	Username      string       `json:"username"`
	Email         *string      `json:"email"`
	ImageURL      string       `json:"imageUrl"`
	Token         *string      `json:"token"`
	CreatedAt     time.Time    `json:"createdAt"`
	LatestMessage *MessageView `json:"latestMessage"`
}

// MessageView is the GraphQL projection of a message.
type MessageView struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserView(u *auth.User, token string) *UserView {
	return &UserView{
		Username:  u.Username,
		Email:     optional(u.Email),
		ImageURL:  u.ImageURL,
		Token:     optional(token),
		CreatedAt: u.CreatedAt,
	}
}

func newMessageView(m *chat.Message) *MessageView {
	if m == nil {
		return nil
	}
	return &MessageView{
		ID:        m.ID.String(),
		From:      m.From,
		To:        m.To,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func newDirectoryView(entries []chat.DirectoryEntry) []*UserView {
	views := make([]*UserView, 0, len(entries))
	for _, e := range entries {
		v := newUserView(e.User, "")
		v.LatestMessage = newMessageView(e.LatestMessage)
		views = append(views, v)
	}
	return views
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
