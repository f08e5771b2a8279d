package storage

import (
	"context"
	"fmt"
	"io"

	"ap-dojo/internal/config"
	"ap-dojo/internal/storage/redis"
	"ap-dojo/internal/storage/sqlite"
)

// Backend is a KV that holds resources until closed.
type Backend interface {
	KV
	io.Closer
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case "", "sqlite":
		store, err := sqlite.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.SQLitePath, err)
		}
		return store, nil
	case "redis":
		store, err := redis.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
