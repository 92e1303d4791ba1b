package store

import (
	"context"
	"testing"
	"time"

	"github.com/nvaldez/feedtray/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return s
}

func sampleItems(now time.Time) []model.Item {
	return []model.Item{
		{
			ID: 1, Feed: model.FeedNotifications,
			Title: "Order #9", Body: "placed",
			Category: model.CategoryOrderPlaced,
			Unread:   true, CreatedAt: now.Add(-time.Hour),
		},
		{
			ID: 2, Feed: model.FeedNotifications,
			Title: "Low stock", Body: "Milk is low",
			Category: model.CategoryStockLow,
			Unread:   true, CreatedAt: now,
		},
		{
			ID: 1, Feed: model.FeedMessages,
			Title: "Ben", Body: "hello",
			Unread: false, CreatedAt: now.Add(-time.Minute),
		},
	}
}

func TestSaveItemsAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := s.SaveItems(ctx, sampleItems(now)); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	all, err := s.History(ctx, HistoryFilter{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d items, want 3", len(all))
	}
	// Most-recent-first across feeds.
	if all[0].Title != "Low stock" {
		t.Errorf("first item = %q, want most recent", all[0].Title)
	}

	kind := model.FeedNotifications
	notifs, err := s.History(ctx, HistoryFilter{Feed: &kind})
	if err != nil {
		t.Fatalf("History(notifications): %v", err)
	}
	if len(notifs) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifs))
	}
	// Same backend ID in a different feed must not collide.
	if notifs[1].ID != 1 || notifs[1].Feed != model.FeedNotifications {
		t.Errorf("unexpected item: %+v", notifs[1])
	}
}

func TestSaveItemsUpsertRefreshes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	items := sampleItems(now)
	if err := s.SaveItems(ctx, items); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	// Re-poll the same item, now read.
	items[1].Unread = false
	if err := s.SaveItems(ctx, items[1:2]); err != nil {
		t.Fatalf("SaveItems (again): %v", err)
	}

	got, err := s.History(ctx, HistoryFilter{UnreadOnly: true})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].Feed != model.FeedNotifications {
		t.Fatalf("unexpected unread set: %+v", got)
	}
}

func TestMarkRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := s.SaveItems(ctx, sampleItems(now)); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	if err := s.MarkRead(ctx, model.FeedNotifications, 2); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	got, err := s.History(ctx, HistoryFilter{UnreadOnly: true})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected unread set: %+v", got)
	}

	if err := s.MarkAllRead(ctx, model.FeedNotifications); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	got, err = s.History(ctx, HistoryFilter{UnreadOnly: true})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unread items remain: %+v", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	var items []model.Item
	for i := 0; i < 10; i++ {
		items = append(items, model.Item{
			ID: int64(i), Feed: model.FeedMessages, Title: "m",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	if err := s.SaveItems(ctx, items); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	got, err := s.History(ctx, HistoryFilter{Limit: 4})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d items, want 4", len(got))
	}
	if got[0].ID != 0 {
		t.Errorf("first item = %d, want newest", got[0].ID)
	}
}
