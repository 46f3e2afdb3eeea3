package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// NotificationStore holds the notification list and the user's
// notification settings.
type NotificationStore struct {
	base
	notifications []model.Notification
	settings      model.NotificationSettings
}

// NewNotificationStore creates an unloaded notification store.
func NewNotificationStore(storage kv.Storage, opts ...Option) *NotificationStore {
	return &NotificationStore{
		base:     newBase(NotificationStoreName, storage, buildOptions(opts)),
		settings: model.DefaultNotificationSettings(),
	}
}

// defaultNotifications is the seed list installed on first use.
func defaultNotifications(now time.Time) []model.Notification {
	return []model.Notification{
		{
			ID:          "1",
			Category:    model.CategoryLearning,
			Title:       "Continue your Python module",
			Description: "You are 60% done! Only 1h30 left to finish.",
			CreatedAt:   now.Add(-2 * time.Hour),
			Link:        model.RouteLearning,
		},
		{
			ID:          "2",
			Category:    model.CategoryWellness,
			Title:       "Time for a break",
			Description: "You have been focused for 2 hours. How about a stretch?",
			CreatedAt:   now.Add(-30 * time.Minute),
			Link:        model.RouteWellness,
		},
		{
			ID:          "3",
			Category:    model.CategoryProject,
			Title:       "New project available",
			Description: "Smart Recycling App matches your skills.",
			CreatedAt:   now.Add(-1 * time.Hour),
			Link:        model.RouteProjects,
		},
	}
}

// Load reads the persisted notifications and settings. When no list has
// been persisted yet the seed list is installed and written immediately.
// Records persisted without a link get one inferred from their category.
func (s *NotificationStore) Load(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: NotificationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found, err := loadJSON[[]model.Notification](ctx, &s.base, KeyNotifications, nil)
	if err != nil {
		return fmt.Errorf("loading notifications: %w", err)
	}

	if found {
		for i := range stored {
			if stored[i].Link == "" {
				stored[i].Link = stored[i].Category.DefaultRoute()
			}
		}
		if stored == nil {
			stored = []model.Notification{}
		}
	} else {
		stored = defaultNotifications(s.now())
		if err := s.saveJSON(ctx, KeyNotifications, stored); err != nil {
			return fmt.Errorf("seeding notifications: %w", err)
		}
	}

	settings, _, err := loadJSON(ctx, &s.base, KeyNotificationSettings, model.DefaultNotificationSettings())
	if err != nil {
		return fmt.Errorf("loading notification settings: %w", err)
	}

	s.notifications = stored
	s.settings = settings
	s.loaded = true
	return nil
}

// commit persists updated and, on success, makes it the live list.
// Callers hold s.mu.
func (s *NotificationStore) commit(ctx context.Context, updated []model.Notification) error {
	if err := s.saveJSON(ctx, KeyNotifications, updated); err != nil {
		return err
	}
	s.notifications = updated
	return nil
}

// MarkAsRead flags the notification with the given id as read. Unknown ids
// are ignored.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	if s == nil {
		return &UsageError{Store: NotificationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: NotificationStoreName}
	}

	updated := slices.Clone(s.notifications)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Read = true
		}
	}
	return s.commit(ctx, updated)
}

// MarkAllAsRead flags every notification as read.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: NotificationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: NotificationStoreName}
	}

	updated := slices.Clone(s.notifications)
	for i := range updated {
		updated[i].Read = true
	}
	return s.commit(ctx, updated)
}

// AddNotification prepends a new unread notification. An empty link is
// replaced by the category's section route.
func (s *NotificationStore) AddNotification(
	ctx context.Context,
	category model.Category,
	title, description, link string,
) (model.Notification, error) {
	if s == nil {
		return model.Notification{}, &UsageError{Store: NotificationStoreName}
	}
	if !category.Valid() {
		return model.Notification{}, fmt.Errorf("unknown notification category %q", category)
	}
	if strings.TrimSpace(title) == "" {
		return model.Notification{}, fmt.Errorf("notification title must not be empty")
	}
	if link == "" {
		link = category.DefaultRoute()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.Notification{}, &UsageError{Store: NotificationStoreName}
	}

	now := s.now()
	n := model.Notification{
		ID:          newID("notif", now),
		Category:    category,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		Link:        link,
	}

	updated := make([]model.Notification, 0, len(s.notifications)+1)
	updated = append(updated, n)
	updated = append(updated, s.notifications...)
	if err := s.commit(ctx, updated); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// UpdateSettings merges the non-nil fields of patch into the settings.
func (s *NotificationStore) UpdateSettings(
	ctx context.Context,
	patch model.NotificationSettingsPatch,
) (model.NotificationSettings, error) {
	if s == nil {
		return model.NotificationSettings{}, &UsageError{Store: NotificationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.NotificationSettings{}, &UsageError{Store: NotificationStoreName}
	}

	updated := patch.Apply(s.settings)
	if err := s.saveJSON(ctx, KeyNotificationSettings, updated); err != nil {
		return s.settings, err
	}
	s.settings = updated
	return updated, nil
}

// Notifications returns a copy of the list, newest first.
func (s *NotificationStore) Notifications() []model.Notification {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notifications)
}

// Settings returns the current notification settings.
func (s *NotificationStore) Settings() model.NotificationSettings {
	if s == nil {
		return model.DefaultNotificationSettings()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UnreadCount counts the notifications not yet read.
func (s *NotificationStore) UnreadCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
