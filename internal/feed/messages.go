package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/nvaldez/feedtray/internal/model"
)

// MessageFeed fetches the messages feed.
type MessageFeed struct {
	client *Client
	path   string
}

// NewMessageFeed creates the messages feed over the given client.
// An empty path falls back to the backend default.
func NewMessageFeed(client *Client, path string) *MessageFeed {
	if path == "" {
		path = "/api/messages/"
	}
	return &MessageFeed{client: client, path: path}
}

// Kind returns the feed identifier for messages.
func (f *MessageFeed) Kind() model.FeedKind {
	return model.FeedMessages
}

// Fetch retrieves the current unread count and recent message summaries,
// most-recent-first. The sender name doubles as the item title.
func (f *MessageFeed) Fetch(ctx context.Context) (*Snapshot, error) {
	var payload messagePayload
	if err := f.client.Get(ctx, f.path, &payload); err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	items := make([]model.Item, 0, len(payload.Messages))
	for _, m := range payload.Messages {
		created, err := parseTimestamp(m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("malformed message %d: %w", m.ID, err)
		}
		items = append(items, model.Item{
			ID:        m.ID,
			Feed:      model.FeedMessages,
			Title:     m.SenderName,
			Body:      m.Body,
			Unread:    !m.IsRead,
			CreatedAt: created,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return &Snapshot{UnreadCount: payload.UnreadCount, Items: items}, nil
}
