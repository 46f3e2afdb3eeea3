package testutil

import (
	"testing"

	"github.com/nhle/humanai-workspace/internal/kv"
)

// NewTestStorage creates an in-memory SQLiteStorage with all migrations
// applied. It automatically closes the storage when the test completes.
func NewTestStorage(t *testing.T) *kv.SQLiteStorage {
	t.Helper()

	s, err := kv.NewSQLiteStorage(kv.MemoryPath)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test storage: %v", err)
		}
	})

	return s
}
