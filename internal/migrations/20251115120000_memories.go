package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upMemories, downMemories)
}

func upMemories(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS memories (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		short_desc TEXT,
		event_date DATE,
		"order"    INTEGER NOT NULL DEFAULT 0,
		visible    BOOLEAN NOT NULL DEFAULT TRUE,
		photos     JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS memories_order_idx ON memories ("order" ASC, id ASC);
	`)
	return err
}

func downMemories(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS memories;`)
	return err
}
