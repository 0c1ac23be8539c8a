package store

import (
	"context"
	"fmt"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
)

// Open builds the backend selected in cfg.
func Open(ctx context.Context, cfg app.Config) (Store, error) {
	switch cfg.Store {
	case app.StoreSQLite, "":
		path := cfg.DBPath
		if path == "" {
			p, err := app.DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(ctx, path)
	case app.StoreRedis:
		client, err := NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case app.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("invalid store %q (use sqlite, redis, or memory)", cfg.Store)
	}
}
