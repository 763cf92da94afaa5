package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id            BIGSERIAL PRIMARY KEY,
	user_id       BIGINT NOT NULL,
	user_name     TEXT NOT NULL DEFAULT '',
	platform      TEXT NOT NULL DEFAULT '',
	url           TEXT NOT NULL DEFAULT '',
	filename      TEXT NOT NULL DEFAULT '',
	file_path     TEXT NOT NULL DEFAULT '',
	file_size     BIGINT NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	download_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	sent_time     TIMESTAMPTZ,
	deleted       BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_downloads_expired
	ON downloads (download_time) WHERE NOT deleted;

CREATE TABLE IF NOT EXISTS user_stats (
	user_id            BIGINT PRIMARY KEY,
	user_name          TEXT NOT NULL DEFAULT '',
	total_downloads    INTEGER NOT NULL DEFAULT 0,
	downloads_today    INTEGER NOT NULL DEFAULT 0,
	last_download_date DATE,
	joined_date        TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the catalog tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
