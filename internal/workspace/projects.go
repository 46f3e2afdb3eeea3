package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/model"
)

// AnalysisState tracks the project compatibility analysis.
type AnalysisState int

const (
	NotAnalyzed AnalysisState = iota
	Analyzing
	Analyzed
)

func (s AnalysisState) String() string {
	switch s {
	case Analyzing:
		return "analyzing"
	case Analyzed:
		return "analyzed"
	default:
		return "not analyzed"
	}
}

// Rewards granted by cross-store flows.
const (
	XPFirstProject    = 50
	XPModuleCompleted = 100

	BadgeFirstProject = "first-project"
	BadgeFirstModule  = "first-module"
)

var (
	// ErrUnknownProject is returned for ids missing from the catalog.
	ErrUnknownProject = errors.New("unknown project")

	// ErrAnalysisRunning is returned when an analysis is already in progress.
	ErrAnalysisRunning = errors.New("project analysis already running")
)

// DefaultCatalog returns the built-in impact projects.
func DefaultCatalog() []model.CatalogProject {
	return []model.CatalogProject{
		{
			ID:           "1",
			Title:        "Urban Reforestation",
			Type:         "Environmental",
			Difficulty:   "Easy",
			Description:  "Plant native trees in city parks with local volunteers.",
			Participants: 124,
			Duration:     "3 months",
			Affinity:     82,
		},
		{
			ID:           "2",
			Title:        "Digital Mentoring for Youth",
			Type:         "Social",
			Difficulty:   "Medium",
			Description:  "Teach programming basics to students from public schools.",
			Participants: 87,
			Duration:     "6 months",
			Affinity:     91,
		},
		{
			ID:           "3",
			Title:        "Community Data Literacy",
			Type:         "Educational",
			Difficulty:   "Advanced",
			Description:  "Help neighborhood associations read and publish open data.",
			Participants: 45,
			Duration:     "4 months",
			Affinity:     91,
		},
		{
			ID:           "4",
			Title:        "Coastal Cleanup Network",
			Type:         "Environmental",
			Difficulty:   "Easy",
			Description:  "Organize monthly beach cleanups and log collected waste.",
			Participants: 210,
			Duration:     "Ongoing",
			Affinity:     74,
		},
	}
}

// Project returns the catalog entry with id.
func (w *Workspace) Project(id string) (model.CatalogProject, bool) {
	i := slices.IndexFunc(w.catalog, func(p model.CatalogProject) bool { return p.ID == id })
	if i < 0 {
		return model.CatalogProject{}, false
	}
	return w.catalog[i], true
}

// OrderedProjects returns the catalog with the recommended project first
// and the rest in catalog order.
func (w *Workspace) OrderedProjects() []model.CatalogProject {
	out := w.Catalog()
	rec, ok := w.Projects.RecommendedProjectID()
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.CatalogProject) int {
		switch {
		case a.ID == rec && b.ID != rec:
			return -1
		case b.ID == rec && a.ID != rec:
			return 1
		default:
			return 0
		}
	})
	return out
}

// AnalysisState returns the current analysis state.
func (w *Workspace) AnalysisState() AnalysisState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.analysis
}

// AnalyzeProjects picks the catalog project with the highest affinity,
// ties going to the earlier entry, and records it as the recommendation.
// Once analyzed, it returns the stored recommendation until ResetAnalysis.
func (w *Workspace) AnalyzeProjects(ctx context.Context) (model.CatalogProject, error) {
	if w.AnalysisState() == Analyzed {
		if id, ok := w.Projects.RecommendedProjectID(); ok {
			if p, found := w.Project(id); found {
				return p, nil
			}
		}
	}

	w.mu.Lock()
	if w.analysis == Analyzing {
		w.mu.Unlock()
		return model.CatalogProject{}, ErrAnalysisRunning
	}
	w.analysis = Analyzing
	w.mu.Unlock()

	best, err := w.analyze(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.analysis = NotAnalyzed
		return model.CatalogProject{}, err
	}
	w.analysis = Analyzed
	return best, nil
}

func (w *Workspace) analyze(ctx context.Context) (model.CatalogProject, error) {
	if len(w.catalog) == 0 {
		return model.CatalogProject{}, fmt.Errorf("analyzing projects: %w", ErrUnknownProject)
	}
	best := w.catalog[0]
	for _, p := range w.catalog[1:] {
		if p.Affinity > best.Affinity {
			best = p
		}
	}
	if err := w.Projects.SetRecommendedProjectID(ctx, best.ID); err != nil {
		return model.CatalogProject{}, err
	}
	if err := w.Projects.SetHasAnalyzed(ctx, true); err != nil {
		return model.CatalogProject{}, err
	}
	w.log.Info("project analysis complete", zap.String("recommended", best.ID), zap.Int("affinity", best.Affinity))
	return best, nil
}

// ResetAnalysis clears the recommendation and the analyzed flag.
func (w *Workspace) ResetAnalysis(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.analysis == Analyzing {
		return ErrAnalysisRunning
	}
	if err := w.Projects.SetRecommendedProjectID(ctx, ""); err != nil {
		return err
	}
	if err := w.Projects.SetHasAnalyzed(ctx, false); err != nil {
		return err
	}
	w.analysis = NotAnalyzed
	return nil
}

// EnrollProject enrolls the user in a catalog project. The first
// enrollment ever unlocks a badge and awards XP. A project notification is
// added when new-project alerts are enabled.
func (w *Workspace) EnrollProject(ctx context.Context, id string) (model.Enrollment, error) {
	p, ok := w.Project(id)
	if !ok {
		return model.Enrollment{}, fmt.Errorf("project %s: %w", id, ErrUnknownProject)
	}

	first := len(w.Projects.Enrollments()) == 0
	e, created, err := w.Projects.Enroll(ctx, p.Ref())
	if err != nil {
		return model.Enrollment{}, err
	}
	if !created {
		return e, nil
	}

	if first && !w.Gamification.HasBadge(BadgeFirstProject) {
		if _, err := w.Gamification.UnlockBadge(ctx, BadgeFirstProject,
			"Change maker", "Joined your first impact project", "heart-handshake"); err != nil {
			return e, err
		}
		if _, err := w.award(ctx, XPFirstProject); err != nil {
			return e, err
		}
	}

	if w.Notifications.Settings().NewProjects {
		if _, err := w.Notifications.AddNotification(ctx, model.CategoryProject,
			"Enrolled in "+p.Title,
			fmt.Sprintf("You joined %s. Check the project page for next steps.", p.Title),
			model.RouteProjects); err != nil {
			return e, err
		}
	}
	return e, nil
}

// UnenrollProject leaves a project. Rewards are kept.
func (w *Workspace) UnenrollProject(ctx context.Context, id string) error {
	if _, ok := w.Project(id); !ok {
		return fmt.Errorf("project %s: %w", id, ErrUnknownProject)
	}
	return w.Projects.Unenroll(ctx, id)
}

// award adds XP and posts a system notification when the level changes.
func (w *Workspace) award(ctx context.Context, xp int) (model.LevelUp, error) {
	up, err := w.Gamification.AddXP(ctx, xp)
	if err != nil {
		return up, err
	}
	if up.LeveledUp {
		if _, err := w.Notifications.AddNotification(ctx, model.CategorySystem,
			fmt.Sprintf("Level %d reached", up.NewLevel),
			"Keep going, new badges are waiting for you.",
			model.RouteDashboard); err != nil {
			return up, err
		}
	}
	return up, nil
}
