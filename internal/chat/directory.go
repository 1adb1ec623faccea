// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package chat

import (
	"context"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/chatgraph/chatgraph/internal/auth"
)

// UserLister is the subset of the user repository needed by the
// directory query.
type UserLister interface {
	ListOthers(ctx context.Context, username string) ([]*auth.User, error)
}

// DirectoryEntry pairs a user with the most recent message exchanged
// between that user and the caller. LatestMessage is nil when the two
// have never exchanged one; that is not an error.
type DirectoryEntry struct {
	User          *auth.User
	LatestMessage *Message
}

// DirectoryService answers the user directory query.
type DirectoryService struct {
	users    UserLister
	messages MessageRepository
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(users UserLister, messages MessageRepository) (*DirectoryService, error) {
	if users == nil {
		return nil, oops.Errorf("user lister is required")
	}
	if messages == nil {
		return nil, oops.Errorf("message repository is required")
	}
	return &DirectoryService{users: users, messages: messages}, nil
}

// ListOthers returns every user except the caller, each annotated with
// the latest message between them and the caller.
//
// The two fetches are independent, so they run concurrently; the merge
// only starts once both complete. The merge itself is a linear scan of
// the caller's messages per user: the message list is ordered most
// recent first, so the first match for a user is their latest message.
// O(users x messages), a documented scaling limit at this data size.
func (s *DirectoryService) ListOthers(ctx context.Context, caller string) ([]DirectoryEntry, error) {
	var (
		users    []*auth.User
		messages []*Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.ListOthers(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.messages.ListForUser(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, oops.Code("DIRECTORY_LIST_FAILED").
			With("caller", caller).
			Wrap(err)
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		entry := DirectoryEntry{User: u}
		for _, m := range messages {
			if m.From == u.Username || m.To == u.Username {
				entry.LatestMessage = m
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
