package kv

import (
	"context"
	"fmt"

	"github.com/nhle/humanai-workspace/internal/model"
)

// Open constructs the backend selected by cfg.
func Open(ctx context.Context, cfg model.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case model.BackendSQLite, "":
		return NewSQLiteStorage(cfg.Path)
	case model.BackendKeyring:
		ring, err := OpenKeyring(cfg.KeyringDir)
		if err != nil {
			return nil, err
		}
		return NewKeyringStorage(ring), nil
	case model.BackendRedis:
		return NewRedisStorage(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
