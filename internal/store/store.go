// Package store holds the workspace's write-through state containers.
//
// Every store follows the same lifecycle: construct with New*Store, call
// Load once, then mutate. A mutation writes the complete updated value to
// the backing kv.Storage before swapping the in-memory state, so a failed
// write leaves the store unchanged and a reload always reflects the last
// successful mutation. Absent or malformed persisted values fall back to
// defaults.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// Store names reported in usage errors.
const (
	NotificationStoreName   = "notifications"
	GamificationStoreName   = "gamification"
	RecommendationStoreName = "ai recommendations"
	EnrollmentStoreName     = "projects"
	ProgressStoreName       = "progress"
)

var (
	// ErrNotLoaded is wrapped by UsageError.
	ErrNotLoaded = errors.New("store not loaded")

	// ErrNegativeXP is returned by AddXP for amounts below zero.
	ErrNegativeXP = errors.New("xp amount must not be negative")

	// ErrXPOverflow is returned by AddXP when the award does not fit.
	ErrXPOverflow = errors.New("xp amount out of range")

	// ErrInvalidCategory is returned for a category the record cannot carry.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// UsageError reports a store used before Load completed.
type UsageError struct {
	Store string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s store used before it was loaded", e.Store)
}

func (e *UsageError) Unwrap() error {
	return ErrNotLoaded
}

// Option configures a store.
type Option func(*options)

type options struct {
	log        *zap.Logger
	now        func() time.Time
	xpPerLevel int
}

// WithLogger sets the logger used to report discarded persisted data.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock overrides the time source used for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithXPPerLevel overrides the gamification level threshold.
// Non-positive values are ignored.
func WithXPPerLevel(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.xpPerLevel = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		log:        zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
		xpPerLevel: model.DefaultXPPerLevel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base carries what every store shares. mu guards the embedding store's
// in-memory state; loaded flips once, inside Load.
type base struct {
	name   string
	kv     kv.Storage
	log    *zap.Logger
	now    func() time.Time
	mu     sync.Mutex
	loaded bool
}

func newBase(name string, storage kv.Storage, o options) base {
	return base{
		name: name,
		kv:   storage,
		log:  o.log.With(zap.String("store", name)),
		now:  o.now,
	}
}

// loadJSON decodes the value stored under key into a copy of fallback.
// found is false when the key is absent or its value is malformed; the
// latter is logged and otherwise ignored. fallback must not share backing
// arrays with live state.
func loadJSON[T any](ctx context.Context, b *base, key string, fallback T) (T, bool, error) {
	raw, err := b.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return fallback, false, nil
		}
		return fallback, false, fmt.Errorf("reading %s: %w", key, err)
	}

	out := fallback
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		b.log.Warn("discarding malformed persisted value",
			zap.String("key", key),
			zap.Error(err),
		)
		return fallback, false, nil
	}
	return out, true, nil
}

// saveJSON writes v under key.
func (b *base) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	if err := b.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

// newID returns "<prefix>_<unix-ms>_<9 random chars>".
func newID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
