package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS scores (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    score           INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    symbol          TEXT NOT NULL,
    strategy        TEXT NOT NULL DEFAULT '',
    date            TIMESTAMPTZ NOT NULL,
    trade_date      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS scores_user_date_idx ON scores (user_id, date DESC);`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS scores`)
			return err
		},
	)
}
