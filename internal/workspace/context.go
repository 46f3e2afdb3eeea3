package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/humanai-workspace/internal/store"
)

// ErrNoWorkspace is wrapped by MissingStoreError.
var ErrNoWorkspace = errors.New("no workspace in context")

// MissingStoreError reports a store requested from a context that carries
// no workspace.
type MissingStoreError struct {
	Store string
}

func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("%s store requested outside a workspace", e.Store)
}

func (e *MissingStoreError) Unwrap() error {
	return ErrNoWorkspace
}

type ctxKey struct{}

// WithWorkspace returns a copy of ctx carrying w.
func WithWorkspace(ctx context.Context, w *Workspace) context.Context {
	return context.WithValue(ctx, ctxKey{}, w)
}

// FromContext returns the workspace carried by ctx.
func FromContext(ctx context.Context) (*Workspace, bool) {
	w, ok := ctx.Value(ctxKey{}).(*Workspace)
	return w, ok && w != nil
}

func from(ctx context.Context, name string) (*Workspace, error) {
	w, ok := FromContext(ctx)
	if !ok {
		return nil, &MissingStoreError{Store: name}
	}
	return w, nil
}

// Require returns the workspace carried by ctx, or a MissingStoreError
// naming the workspace itself.
func Require(ctx context.Context) (*Workspace, error) {
	return from(ctx, "workspace")
}

// NotificationsFrom returns the notification store of the workspace in ctx.
func NotificationsFrom(ctx context.Context) (*store.NotificationStore, error) {
	w, err := from(ctx, store.NotificationStoreName)
	if err != nil {
		return nil, err
	}
	return w.Notifications, nil
}

// GamificationFrom returns the gamification store of the workspace in ctx.
func GamificationFrom(ctx context.Context) (*store.GamificationStore, error) {
	w, err := from(ctx, store.GamificationStoreName)
	if err != nil {
		return nil, err
	}
	return w.Gamification, nil
}

// RecommendationsFrom returns the recommendation store of the workspace in ctx.
func RecommendationsFrom(ctx context.Context) (*store.RecommendationStore, error) {
	w, err := from(ctx, store.RecommendationStoreName)
	if err != nil {
		return nil, err
	}
	return w.Recommendations, nil
}

// ProjectsFrom returns the enrollment store of the workspace in ctx.
func ProjectsFrom(ctx context.Context) (*store.EnrollmentStore, error) {
	w, err := from(ctx, store.EnrollmentStoreName)
	if err != nil {
		return nil, err
	}
	return w.Projects, nil
}

// ProgressFrom returns the progress store of the workspace in ctx.
func ProgressFrom(ctx context.Context) (*store.ProgressStore, error) {
	w, err := from(ctx, store.ProgressStoreName)
	if err != nil {
		return nil, err
	}
	return w.Progress, nil
}
