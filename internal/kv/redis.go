package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage on a Redis server. Every key is
// namespaced with a prefix so several workspaces can share one database.
type RedisStorage struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisStorage connects to addr and verifies the connection with a ping.
func NewRedisStorage(ctx context.Context, addr, prefix string) (*RedisStorage, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStorage{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStorage) key(k string) string {
	return s.prefix + k
}

// Get returns the value stored under key.
func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key without expiry.
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Remove deletes key if present.
func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Keys scans the prefix namespace and returns the unprefixed keys.
func (s *RedisStorage) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the client connection pool.
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
