package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// ProgressStore holds learning module progress and the mood history.
type ProgressStore struct {
	base
	modules []model.Module
	mood    []model.MoodEntry
}

// NewProgressStore creates an unloaded progress store.
func NewProgressStore(storage kv.Storage, opts ...Option) *ProgressStore {
	return &ProgressStore{
		base:    newBase(ProgressStoreName, storage, buildOptions(opts)),
		modules: DefaultModules(),
		mood:    []model.MoodEntry{},
	}
}

// DefaultModules returns the built-in learning catalog.
func DefaultModules() []model.Module {
	return []model.Module{
		{
			ID:          "python-basics",
			Title:       "Python for Data Analysis",
			Duration:    "4h",
			Level:       "Beginner",
			Status:      model.ModuleInProgress,
			Category:    "Technology",
			Description: "Variables, collections and your first analysis with pandas.",
			Tasks: []model.ModuleTask{
				{ID: "t1", Title: "Install Python and set up the editor", Completed: true},
				{ID: "t2", Title: "Work through data types and collections", Completed: true},
				{ID: "t3", Title: "Load a CSV with pandas", Completed: true},
				{ID: "t4", Title: "Build a summary report", Completed: false},
				{ID: "t5", Title: "Publish the notebook", Completed: false},
			},
		},
		{
			ID:          "communication",
			Title:       "Assertive Communication",
			Duration:    "2h",
			Level:       "Intermediate",
			Status:      model.ModuleNotStarted,
			Category:    "Soft skills",
			Description: "Clear feedback, active listening and handling difficult conversations.",
			Tasks: []model.ModuleTask{
				{ID: "t1", Title: "Watch the active listening lesson"},
				{ID: "t2", Title: "Practice the feedback framework"},
				{ID: "t3", Title: "Record a two-minute pitch"},
			},
		},
		{
			ID:          "leadership",
			Title:       "Leading Hybrid Teams",
			Duration:    "3h",
			Level:       "Advanced",
			Status:      model.ModuleNotStarted,
			Category:    "Leadership",
			Description: "Rituals, trust and decision making across remote and on-site teams.",
			Tasks: []model.ModuleTask{
				{ID: "t1", Title: "Map your team's working agreements"},
				{ID: "t2", Title: "Run an asynchronous retrospective"},
				{ID: "t3", Title: "Write a decision record"},
				{ID: "t4", Title: "Reflect on your leadership style"},
			},
		},
	}
}

// Load reads the persisted modules and mood history, falling back to the
// built-in catalog and an empty history.
func (s *ProgressStore) Load(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: ProgressStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	modules, found, err := loadJSON[[]model.Module](ctx, &s.base, KeyModules, nil)
	if err != nil {
		return fmt.Errorf("loading modules: %w", err)
	}
	if !found || modules == nil {
		modules = DefaultModules()
	}

	mood, _, err := loadJSON[[]model.MoodEntry](ctx, &s.base, KeyMood, nil)
	if err != nil {
		return fmt.Errorf("loading mood history: %w", err)
	}
	if mood == nil {
		mood = []model.MoodEntry{}
	}

	s.modules = modules
	s.mood = mood
	s.loaded = true
	return nil
}

// cloneModules deep-copies modules so task edits never alias live state.
func cloneModules(in []model.Module) []model.Module {
	out := slices.Clone(in)
	for i := range out {
		out[i].Tasks = slices.Clone(in[i].Tasks)
	}
	return out
}

func (s *ProgressStore) moduleIndex(id string) int {
	return slices.IndexFunc(s.modules, func(m model.Module) bool { return m.ID == id })
}

func (s *ProgressStore) commitModules(ctx context.Context, updated []model.Module) error {
	if err := s.saveJSON(ctx, KeyModules, updated); err != nil {
		return err
	}
	s.modules = updated
	return nil
}

// ToggleTask flips the completion of one task. A module that was not
// started moves to in progress.
func (s *ProgressStore) ToggleTask(ctx context.Context, moduleID, taskID string) (model.Module, error) {
	if s == nil {
		return model.Module{}, &UsageError{Store: ProgressStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.Module{}, &UsageError{Store: ProgressStoreName}
	}

	mi := s.moduleIndex(moduleID)
	if mi < 0 {
		return model.Module{}, fmt.Errorf("module %s: %w", moduleID, ErrNotFound)
	}

	updated := cloneModules(s.modules)
	m := &updated[mi]
	ti := slices.IndexFunc(m.Tasks, func(t model.ModuleTask) bool { return t.ID == taskID })
	if ti < 0 {
		return model.Module{}, fmt.Errorf("task %s in module %s: %w", taskID, moduleID, ErrNotFound)
	}
	m.Tasks[ti].Completed = !m.Tasks[ti].Completed
	if m.Status == model.ModuleNotStarted {
		m.Status = model.ModuleInProgress
	}

	if err := s.commitModules(ctx, updated); err != nil {
		return model.Module{}, err
	}
	return cloneModules(updated[mi : mi+1])[0], nil
}

// CompleteModule marks a module completed. It reports whether the module
// was not already completed.
func (s *ProgressStore) CompleteModule(ctx context.Context, moduleID string) (bool, error) {
	if s == nil {
		return false, &UsageError{Store: ProgressStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false, &UsageError{Store: ProgressStoreName}
	}

	mi := s.moduleIndex(moduleID)
	if mi < 0 {
		return false, fmt.Errorf("module %s: %w", moduleID, ErrNotFound)
	}
	if s.modules[mi].Status == model.ModuleCompleted {
		return false, nil
	}

	updated := cloneModules(s.modules)
	updated[mi].Status = model.ModuleCompleted
	if err := s.commitModules(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// AddMoodEntry records today's mood, keeping the last
// model.MaxMoodEntries entries.
func (s *ProgressStore) AddMoodEntry(ctx context.Context, mood string, score int) (model.MoodEntry, error) {
	if s == nil {
		return model.MoodEntry{}, &UsageError{Store: ProgressStoreName}
	}
	if strings.TrimSpace(mood) == "" {
		return model.MoodEntry{}, fmt.Errorf("mood must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.MoodEntry{}, &UsageError{Store: ProgressStoreName}
	}

	entry := model.MoodEntry{
		Date:  s.now().Format("2006-01-02"),
		Mood:  mood,
		Score: score,
	}

	keep := s.mood
	if len(keep) > model.MaxMoodEntries-1 {
		keep = keep[len(keep)-(model.MaxMoodEntries-1):]
	}
	updated := append(slices.Clone(keep), entry)

	if err := s.saveJSON(ctx, KeyMood, updated); err != nil {
		return model.MoodEntry{}, err
	}
	s.mood = updated
	return entry, nil
}

// Modules returns a copy of the learning modules.
func (s *ProgressStore) Modules() []model.Module {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneModules(s.modules)
}

// Module returns the module with the given id.
func (s *ProgressStore) Module(id string) (model.Module, bool) {
	for _, m := range s.Modules() {
		if m.ID == id {
			return m, true
		}
	}
	return model.Module{}, false
}

// MoodHistory returns the mood entries, oldest first.
func (s *ProgressStore) MoodHistory() []model.MoodEntry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mood)
}
