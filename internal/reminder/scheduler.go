// Package reminder posts periodic wellness break notifications.
package reminder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/model"
)

// DefaultInterval is used when a non-positive interval is configured.
const DefaultInterval = 120 * time.Minute

// writeTimeout bounds a single reminder write.
const writeTimeout = 10 * time.Second

// Break reminder text.
const (
	BreakTitle       = "Time for a break"
	BreakDescription = "You have been focused for a while. Stretch, breathe and drink some water."
)

// State is the scheduler's last observed state.
type State int

const (
	Idle State = iota
	Running
	Failed
)

// Status summarizes scheduler activity.
type Status struct {
	State   State
	LastRun time.Time
	Sent    int
	Error   error
}

// Result is emitted after every reminder attempt.
type Result struct {
	// Notification is nil when the reminder was skipped or failed.
	Notification *model.Notification
	Skipped      bool
	Error        error
}

// Notifier is the part of the notification store the scheduler needs.
type Notifier interface {
	Settings() model.NotificationSettings
	AddNotification(ctx context.Context, category model.Category, title, description, link string) (model.Notification, error)
}

// Scheduler fires a wellness reminder every interval while wellness
// reminders are enabled.
type Scheduler struct {
	notifier  Notifier
	interval  time.Duration
	log       *zap.Logger
	resultCh  chan Result
	triggerCh chan struct{}
	stopCh    chan struct{}
	done      chan struct{}
	mu        sync.Mutex
	running   bool
	status    Status
}

// New creates a stopped scheduler.
func New(n Notifier, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		notifier:  n,
		interval:  interval,
		log:       log,
		resultCh:  make(chan Result, 16),
		triggerCh: make(chan struct{}, 1),
	}
}

// Interval returns the reminder period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the ticker loop. Calling Start on a running scheduler
// does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stopCh, s.done)
}

// Stop halts the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	done := s.done
	s.running = false
	s.mu.Unlock()
	<-done
}

// TriggerNow requests an immediate reminder from the running loop.
func (s *Scheduler) TriggerNow() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
		// A trigger is already pending.
	}
}

// Results delivers one Result per attempt. Results are dropped when
// nobody reads them.
func (s *Scheduler) Results() <-chan Result {
	return s.resultCh
}

// Status returns a snapshot of scheduler activity.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.send(s.Remind(context.Background()))
		case <-s.triggerCh:
			s.send(s.Remind(context.Background()))
		}
	}
}

// Remind posts one break reminder unless wellness reminders are disabled.
func (s *Scheduler) Remind(ctx context.Context) Result {
	if !s.notifier.Settings().WellnessReminders {
		s.log.Debug("wellness reminders disabled, skipping")
		return Result{Skipped: true}
	}

	s.setStatus(Running, nil, false)

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	n, err := s.notifier.AddNotification(ctx, model.CategoryWellness, BreakTitle, BreakDescription, model.RouteWellness)
	if err != nil {
		s.log.Warn("posting break reminder", zap.Error(err))
		s.setStatus(Failed, err, false)
		return Result{Error: err}
	}
	s.setStatus(Idle, nil, true)
	s.log.Info("break reminder posted", zap.String("id", n.ID))
	return Result{Notification: &n}
}

func (s *Scheduler) setStatus(state State, err error, sent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = state
	s.status.Error = err
	if sent {
		s.status.Sent++
		s.status.LastRun = time.Now()
	}
}

func (s *Scheduler) send(r Result) {
	select {
	case s.resultCh <- r:
	default:
	}
}
