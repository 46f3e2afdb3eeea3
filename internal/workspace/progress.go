package workspace

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/model"
)

// ModuleResult is the outcome of completing a learning module.
type ModuleResult struct {
	Completed bool
	XP        int
	LevelUp   model.LevelUp
	NewBadge  bool
}

// CompleteModule marks a module completed and rewards it. Completing an
// already completed module changes nothing.
func (w *Workspace) CompleteModule(ctx context.Context, moduleID string) (ModuleResult, error) {
	changed, err := w.Progress.CompleteModule(ctx, moduleID)
	if err != nil {
		return ModuleResult{}, err
	}
	if !changed {
		return ModuleResult{}, nil
	}

	res := ModuleResult{Completed: true, XP: XPModuleCompleted}
	res.NewBadge, err = w.Gamification.UnlockBadge(ctx, BadgeFirstModule,
		"First steps", "Completed your first learning module", "graduation-cap")
	if err != nil {
		return res, err
	}
	res.LevelUp, err = w.award(ctx, XPModuleCompleted)
	if err != nil {
		return res, err
	}
	w.log.Info("module completed", zap.String("module", moduleID), zap.Int("level", res.LevelUp.NewLevel))
	return res, nil
}

// RecordMood appends a mood check-in. A tired or stressed mood adds a
// wellness recommendation when AI recommendations are enabled; the
// recommendation is nil otherwise.
func (w *Workspace) RecordMood(ctx context.Context, mood string, score int) (model.MoodEntry, *model.PriorityRecommendation, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	entry, err := w.Progress.AddMoodEntry(ctx, mood, score)
	if err != nil {
		return model.MoodEntry{}, nil, err
	}
	if !model.NeedsCare(mood) || !w.Notifications.Settings().AIRecommendations {
		return entry, nil, nil
	}

	rec, err := w.Recommendations.AddRecommendation(ctx, model.RecommendationInput{
		Category:    model.CategoryWellness,
		Title:       "Take a breathing break",
		Description: fmt.Sprintf("You said you feel %s. Five minutes of guided breathing can help.", mood),
		ActionText:  "Start exercise",
		ActionRoute: model.RouteWellness,
		Icon:        "wind",
		Priority:    10,
	})
	if err != nil {
		return entry, nil, err
	}
	return entry, &rec, nil
}
