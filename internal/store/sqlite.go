package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nvaldez/feedtray/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveItems upserts a batch of fetched items. Re-seeing a known item
// refreshes its text and read flag; first_seen_at is kept from the first
// sighting.
func (s *SQLiteStore) SaveItems(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO items (
			id, feed, item_id, title, body, category, unread, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(feed, item_id) DO UPDATE SET
			title    = excluded.title,
			body     = excluded.body,
			category = excluded.category,
			unread   = excluded.unread`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err = stmt.ExecContext(ctx,
			uuid.NewString(), string(item.Feed), item.ID,
			item.Title, item.Body, item.Category,
			item.Unread, item.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting item %s/%d: %w", item.Feed, item.ID, err)
		}
	}

	return tx.Commit()
}

// History retrieves archived items matching the filter, most-recent-first.
func (s *SQLiteStore) History(
	ctx context.Context,
	filter HistoryFilter,
) ([]model.Item, error) {
	var conditions []string
	var args []interface{}

	if filter.Feed != nil {
		conditions = append(conditions, "feed = ?")
		args = append(args, string(*filter.Feed))
	}
	if filter.UnreadOnly {
		conditions = append(conditions, "unread = 1")
	}

	query := "SELECT item_id, feed, title, body, category, unread, created_at FROM items"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	var items []model.Item
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	return items, nil
}

// MarkRead mirrors a backend mark-read into the archive.
func (s *SQLiteStore) MarkRead(
	ctx context.Context,
	feed model.FeedKind,
	itemID int64,
) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE items SET unread = 0 WHERE feed = ? AND item_id = ?",
		string(feed), itemID,
	)
	if err != nil {
		return fmt.Errorf("marking item %s/%d read: %w", feed, itemID, err)
	}
	return nil
}

// MarkAllRead mirrors a backend mark-all-read into the archive.
func (s *SQLiteStore) MarkAllRead(ctx context.Context, feed model.FeedKind) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE items SET unread = 0 WHERE feed = ?",
		string(feed),
	)
	if err != nil {
		return fmt.Errorf("marking feed %s read: %w", feed, err)
	}
	return nil
}
