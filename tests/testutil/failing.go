package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/nhle/humanai-workspace/internal/kv"
)

// ErrInjected is the error returned by FailingStorage writes.
var ErrInjected = errors.New("injected storage failure")

// FailingStorage wraps a Storage and fails every Set and Remove while
// FailWrites is true. Reads pass through.
type FailingStorage struct {
	kv.Storage
	FailWrites atomic.Bool
	Writes     atomic.Int32
}

// NewFailingStorage wraps s with writes initially succeeding.
func NewFailingStorage(s kv.Storage) *FailingStorage {
	return &FailingStorage{Storage: s}
}

func (f *FailingStorage) Set(ctx context.Context, key, value string) error {
	f.Writes.Add(1)
	if f.FailWrites.Load() {
		return ErrInjected
	}
	return f.Storage.Set(ctx, key, value)
}

func (f *FailingStorage) Remove(ctx context.Context, key string) error {
	f.Writes.Add(1)
	if f.FailWrites.Load() {
		return ErrInjected
	}
	return f.Storage.Remove(ctx, key)
}
