package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// RecommendationStore holds the dashboard's priority recommendation cards,
// sorted by descending priority.
//
// The persisted key is written only while the list is non-empty and is
// removed when the last card is removed or the list is cleared.
type RecommendationStore struct {
	base
	recs []model.PriorityRecommendation
}

// NewRecommendationStore creates an unloaded recommendation store.
func NewRecommendationStore(storage kv.Storage, opts ...Option) *RecommendationStore {
	return &RecommendationStore{
		base: newBase(RecommendationStoreName, storage, buildOptions(opts)),
		recs: []model.PriorityRecommendation{},
	}
}

// Load reads the persisted list. Unlike notifications there are no
// built-in defaults.
func (s *RecommendationStore) Load(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: RecommendationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, _, err := loadJSON[[]model.PriorityRecommendation](ctx, &s.base, KeyRecommendations, nil)
	if err != nil {
		return fmt.Errorf("loading recommendations: %w", err)
	}
	if recs == nil {
		recs = []model.PriorityRecommendation{}
	}

	s.recs = recs
	s.loaded = true
	return nil
}

// commit persists updated, or removes the key when it is empty, then
// makes it the live list.
func (s *RecommendationStore) commit(ctx context.Context, updated []model.PriorityRecommendation) error {
	if len(updated) == 0 {
		if err := s.kv.Remove(ctx, KeyRecommendations); err != nil {
			return fmt.Errorf("clearing %s: %w", KeyRecommendations, err)
		}
	} else if err := s.saveJSON(ctx, KeyRecommendations, updated); err != nil {
		return err
	}
	s.recs = updated
	return nil
}

// AddRecommendation inserts a card, replacing any existing card with the
// same category and action route. Cards with equal priority keep their
// insertion order.
func (s *RecommendationStore) AddRecommendation(
	ctx context.Context,
	in model.RecommendationInput,
) (model.PriorityRecommendation, error) {
	if s == nil {
		return model.PriorityRecommendation{}, &UsageError{Store: RecommendationStoreName}
	}
	if !model.RecommendationCategory(in.Category) {
		return model.PriorityRecommendation{}, fmt.Errorf("recommendation category %q: %w", in.Category, ErrInvalidCategory)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.PriorityRecommendation{}, &UsageError{Store: RecommendationStoreName}
	}

	now := s.now()
	rec := model.PriorityRecommendation{
		ID:          newID("rec", now),
		Category:    in.Category,
		Title:       in.Title,
		Description: in.Description,
		ActionText:  in.ActionText,
		ActionRoute: in.ActionRoute,
		Icon:        in.Icon,
		CreatedAt:   now,
		Priority:    in.Priority,
	}

	updated := make([]model.PriorityRecommendation, 0, len(s.recs)+1)
	for _, r := range s.recs {
		if r.Category == in.Category && r.ActionRoute == in.ActionRoute {
			continue
		}
		updated = append(updated, r)
	}
	updated = append(updated, rec)
	slices.SortStableFunc(updated, func(a, b model.PriorityRecommendation) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	if err := s.commit(ctx, updated); err != nil {
		return model.PriorityRecommendation{}, err
	}
	return rec, nil
}

// RemoveRecommendation drops the card with the given id.
func (s *RecommendationStore) RemoveRecommendation(ctx context.Context, id string) error {
	if s == nil {
		return &UsageError{Store: RecommendationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: RecommendationStoreName}
	}

	updated := slices.DeleteFunc(slices.Clone(s.recs), func(r model.PriorityRecommendation) bool {
		return r.ID == id
	})
	return s.commit(ctx, updated)
}

// ClearAll drops every card and removes the persisted key.
func (s *RecommendationStore) ClearAll(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: RecommendationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: RecommendationStoreName}
	}

	return s.commit(ctx, []model.PriorityRecommendation{})
}

// Recommendations returns a copy of the list, highest priority first.
func (s *RecommendationStore) Recommendations() []model.PriorityRecommendation {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recs)
}

// Top returns at most n cards, highest priority first.
func (s *RecommendationStore) Top(n int) []model.PriorityRecommendation {
	recs := s.Recommendations()
	if n >= 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
