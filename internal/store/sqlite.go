package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/db"
)

var _ Store = (*SQLStore)(nil)

type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// pending migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if err := app.EnsureDBDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	applied, err := db.ApplyMigrations(ctx, sqldb)
	if err != nil {
		sqldb.Close()
		return nil, err
	}
	if applied > 0 {
		log.Printf("[STORE] Applied %d migration(s) to %s", applied, path)
	}
	return &SQLStore{db: sqldb}, nil
}

func NewSQLStore(sqldb *sql.DB) *SQLStore {
	return &SQLStore{db: sqldb}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	var value string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO kv_records(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, string(value))
	if err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv_records WHERE substr(key, 1, ?) = ? ORDER BY key ASC`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()
	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
