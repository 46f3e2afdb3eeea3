// Package workspace composes the state stores into the single handle the
// CLI works with and implements the flows that span several stores.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/store"
)

// Workspace owns the storage backend and every loaded store.
type Workspace struct {
	storage kv.Storage
	log     *zap.Logger
	now     func() time.Time
	catalog []model.CatalogProject

	Notifications   *store.NotificationStore
	Gamification    *store.GamificationStore
	Recommendations *store.RecommendationStore
	Projects        *store.EnrollmentStore
	Progress        *store.ProgressStore

	mu       sync.Mutex
	analysis AnalysisState
	user     *model.User
}

// Option configures Open.
type Option func(*config)

type config struct {
	log        *zap.Logger
	now        func() time.Time
	xpPerLevel int
	catalog    []model.CatalogProject
}

// WithLogger sets the logger handed to every store.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides the time source for every store.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithXPPerLevel sets the gamification level threshold.
func WithXPPerLevel(n int) Option {
	return func(c *config) { c.xpPerLevel = n }
}

// WithCatalog replaces the built-in project catalog.
func WithCatalog(projects []model.CatalogProject) Option {
	return func(c *config) {
		if len(projects) > 0 {
			c.catalog = projects
		}
	}
}

// Open loads every store from storage. The returned workspace owns
// storage and closes it in Close.
func Open(ctx context.Context, storage kv.Storage, opts ...Option) (*Workspace, error) {
	if storage == nil {
		return nil, errors.New("workspace: nil storage")
	}
	cfg := config{
		log:        zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
		xpPerLevel: model.DefaultXPPerLevel,
		catalog:    DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	storeOpts := func(name string) []store.Option {
		return []store.Option{
			store.WithLogger(cfg.log.Named(name)),
			store.WithClock(cfg.now),
			store.WithXPPerLevel(cfg.xpPerLevel),
		}
	}

	w := &Workspace{
		storage:         storage,
		log:             cfg.log,
		now:             cfg.now,
		catalog:         cfg.catalog,
		Notifications:   store.NewNotificationStore(storage, storeOpts("notifications")...),
		Gamification:    store.NewGamificationStore(storage, storeOpts("gamification")...),
		Recommendations: store.NewRecommendationStore(storage, storeOpts("recommendations")...),
		Projects:        store.NewEnrollmentStore(storage, storeOpts("projects")...),
		Progress:        store.NewProgressStore(storage, storeOpts("progress")...),
	}

	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{store.NotificationStoreName, w.Notifications.Load},
		{store.GamificationStoreName, w.Gamification.Load},
		{store.RecommendationStoreName, w.Recommendations.Load},
		{store.EnrollmentStoreName, w.Projects.Load},
		{store.ProgressStoreName, w.Progress.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return nil, fmt.Errorf("loading %s store: %w", l.name, err)
		}
	}
	if err := w.loadUser(ctx); err != nil {
		return nil, err
	}

	if w.Projects.HasAnalyzed() {
		w.analysis = Analyzed
	}
	w.log.Debug("workspace opened",
		zap.Int("notifications", len(w.Notifications.Notifications())),
		zap.Int("level", w.Gamification.Level()),
		zap.Int("enrollments", len(w.Projects.Enrollments())),
	)
	return w, nil
}

// Close releases the storage backend.
func (w *Workspace) Close() error {
	if w == nil || w.storage == nil {
		return nil
	}
	return w.storage.Close()
}

// Storage returns the backing key-value storage.
func (w *Workspace) Storage() kv.Storage {
	return w.storage
}

// Catalog returns the project catalog in catalog order.
func (w *Workspace) Catalog() []model.CatalogProject {
	out := make([]model.CatalogProject, len(w.catalog))
	copy(out, w.catalog)
	return out
}
