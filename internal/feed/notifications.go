package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/nvaldez/feedtray/internal/model"
)

// NotificationFeed fetches the notifications feed.
type NotificationFeed struct {
	client *Client
	path   string
}

// NewNotificationFeed creates the notifications feed over the given client.
// An empty path falls back to the backend default.
func NewNotificationFeed(client *Client, path string) *NotificationFeed {
	if path == "" {
		path = "/api/notifications/"
	}
	return &NotificationFeed{client: client, path: path}
}

// Kind returns the feed identifier for notifications.
func (f *NotificationFeed) Kind() model.FeedKind {
	return model.FeedNotifications
}

// Fetch retrieves the current unread count and recent notifications,
// most-recent-first.
func (f *NotificationFeed) Fetch(ctx context.Context) (*Snapshot, error) {
	var payload notificationPayload
	if err := f.client.Get(ctx, f.path, &payload); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}

	items := make([]model.Item, 0, len(payload.Notifications))
	for _, n := range payload.Notifications {
		created, err := parseTimestamp(n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("malformed notification %d: %w", n.ID, err)
		}
		items = append(items, model.Item{
			ID:        n.ID,
			Feed:      model.FeedNotifications,
			Title:     n.Title,
			Body:      n.Message,
			Category:  n.NotificationType,
			Unread:    !n.IsRead,
			CreatedAt: created,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return &Snapshot{UnreadCount: payload.UnreadCount, Items: items}, nil
}

// MarkRead marks one notification as read on the backend and returns the
// fresh unread count.
func (f *NotificationFeed) MarkRead(ctx context.Context, id int64) (int, error) {
	return f.client.MarkNotificationRead(ctx, f.path, id)
}

// MarkAllRead marks every notification as read on the backend.
func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	return f.client.MarkAllNotificationsRead(ctx, f.path)
}
