package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

// Every record is one JSON document keyed by name; see the store package
// for the key layout.
var migrations = []migration{
	{
		version: 1,
		name:    "kv_records",
		sql: `
CREATE TABLE IF NOT EXISTS kv_records (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "kv_records_updated_index",
		sql: `
CREATE INDEX IF NOT EXISTS idx_kv_records_updated_at ON kv_records(updated_at);
`,
	},
}

// ApplyMigrations runs every migration not yet recorded in
// schema_migrations, each in its own transaction, and returns how many ran.
func ApplyMigrations(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		var exists int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return applied, fmt.Errorf("check migration version %d: %w", m.version, err)
		}
		if err := applyOne(ctx, db, m); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
		return fmt.Errorf("record migration version %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration version %d: %w", m.version, err)
	}
	return nil
}

// SchemaVersion reports the highest applied migration, or 0 on a fresh
// database.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}
