package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/store"
	"github.com/nhle/humanai-workspace/tests/testutil"
)

type fakeNotifier struct {
	mu       sync.Mutex
	settings model.NotificationSettings
	added    []model.Notification
	err      error
}

func (f *fakeNotifier) Settings() model.NotificationSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeNotifier) AddNotification(_ context.Context, c model.Category, title, desc, link string) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Notification{}, f.err
	}
	n := model.Notification{ID: title, Category: c, Title: title, Description: desc, Link: link}
	f.added = append(f.added, n)
	return n, nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

func waitResult(t *testing.T, s *Scheduler) Result {
	t.Helper()
	select {
	case r := <-s.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder result")
		return Result{}
	}
}

func TestScheduler_TriggerNow(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := &fakeNotifier{settings: model.DefaultNotificationSettings()}
	s := New(n, time.Hour, nil)
	s.Start()
	defer s.Stop()

	s.TriggerNow()
	r := waitResult(t, s)

	require.NoError(t, r.Error)
	require.NotNil(t, r.Notification)
	assert.Equal(t, model.CategoryWellness, r.Notification.Category)
	assert.Equal(t, BreakTitle, r.Notification.Title)
	assert.Equal(t, model.RouteWellness, r.Notification.Link)
	assert.Equal(t, 1, s.Status().Sent)
}

func TestScheduler_Ticks(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := &fakeNotifier{settings: model.DefaultNotificationSettings()}
	s := New(n, 5*time.Millisecond, nil)
	s.Start()

	waitResult(t, s)
	waitResult(t, s)
	s.Stop()

	assert.GreaterOrEqual(t, n.count(), 2)
}

func TestScheduler_SkipsWhenDisabled(t *testing.T) {
	n := &fakeNotifier{settings: model.NotificationSettings{WellnessReminders: false}}
	s := New(n, time.Hour, nil)

	r := s.Remind(context.Background())
	assert.True(t, r.Skipped)
	assert.Nil(t, r.Notification)
	assert.Equal(t, 0, n.count())
}

func TestScheduler_ReportsFailures(t *testing.T) {
	boom := errors.New("boom")
	n := &fakeNotifier{settings: model.DefaultNotificationSettings(), err: boom}
	s := New(n, time.Hour, nil)

	r := s.Remind(context.Background())
	assert.ErrorIs(t, r.Error, boom)
	st := s.Status()
	assert.Equal(t, Failed, st.State)
	assert.ErrorIs(t, st.Error, boom)
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(&fakeNotifier{}, time.Hour, nil)
	s.Stop()
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	s.Start()
	s.Stop()
}

func TestNew_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(&fakeNotifier{}, 0, nil).Interval())
}

func TestScheduler_WithNotificationStore(t *testing.T) {
	ns := store.NewNotificationStore(testutil.NewTestStorage(t))
	require.NoError(t, ns.Load(context.Background()))

	s := New(ns, time.Hour, nil)
	r := s.Remind(context.Background())
	require.NoError(t, r.Error)

	got := ns.Notifications()
	require.Len(t, got, 4)
	assert.Equal(t, BreakTitle, got[0].Title)
	assert.False(t, got[0].Read)
}
