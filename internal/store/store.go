package store

import (
	"context"

	"github.com/nvaldez/feedtray/internal/model"
)

// HistoryFilter controls history queries.
type HistoryFilter struct {
	Feed       *model.FeedKind
	UnreadOnly bool
	Limit      int
}

// Store is the local archive of every feed item seen across sessions.
// It is a browsable history only: novelty detection runs against the
// in-memory poll baselines, never against the archive.
type Store interface {
	// SaveItems upserts a batch of fetched items into the archive.
	SaveItems(ctx context.Context, items []model.Item) error

	// History returns archived items, most-recent-first.
	History(ctx context.Context, filter HistoryFilter) ([]model.Item, error)

	// MarkRead mirrors a backend mark-read into the archive.
	MarkRead(ctx context.Context, feed model.FeedKind, itemID int64) error

	// MarkAllRead mirrors a backend mark-all-read into the archive.
	MarkAllRead(ctx context.Context, feed model.FeedKind) error

	Close() error
}
