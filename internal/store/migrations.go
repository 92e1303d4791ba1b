package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id            TEXT PRIMARY KEY,
	feed          TEXT NOT NULL,
	item_id       INTEGER NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	body          TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	unread        INTEGER NOT NULL DEFAULT 1,
	created_at    DATETIME NOT NULL,
	first_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(feed, item_id)
);

CREATE INDEX IF NOT EXISTS idx_items_feed_created
	ON items(feed, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_items_feed_unread
	ON items(feed, unread);
`,
	},
}
