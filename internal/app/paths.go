package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "ifcalc"
	dbFileName    = "ifcalc.db"
	backupDirName = "backups"
)

// DefaultDBPath is ifcalc.db under the per-user config directory.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// BackupDir is where snapshots go: beside the SQLite file when one is in
// use, otherwise beside the default database location so redis and memory
// stores share one place.
func BackupDir(cfg Config) (string, error) {
	if cfg.Store == StoreSQLite && cfg.DBPath != "" {
		return filepath.Join(filepath.Dir(cfg.DBPath), backupDirName), nil
	}
	path, err := DefaultDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), backupDirName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
