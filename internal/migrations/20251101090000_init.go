package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS photos (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT,
		description TEXT,
		tags        TEXT[] NOT NULL DEFAULT '{}',
		url         TEXT NOT NULL,
		path        TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS photos_created_at_idx ON photos (created_at DESC);
	CREATE INDEX IF NOT EXISTS photos_tags_idx ON photos USING GIN (tags);

	CREATE TABLE IF NOT EXISTS tags (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS news (
		id           BIGSERIAL PRIMARY KEY,
		title        TEXT NOT NULL,
		content      TEXT,
		image_url    TEXT,
		image_path   TEXT,
		published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS events (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		date_end   TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`)
	return err
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS events;
	DROP TABLE IF EXISTS news;
	DROP TABLE IF EXISTS tags;
	DROP TABLE IF EXISTS photos;
	`)
	return err
}
