package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open returns a single-connection handle so every write is serialized
// through one SQLite connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA synchronous = FULL;`); err != nil {
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}
	return db, nil
}
