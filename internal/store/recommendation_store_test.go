package store

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/tests/testutil"
)

func loadedRecommendationStore(t *testing.T) (*RecommendationStore, *testutil.FailingStorage) {
	t.Helper()
	storage := testutil.NewFailingStorage(testutil.NewTestStorage(t))
	s := NewRecommendationStore(storage, WithClock(fixedClock))
	require.NoError(t, s.Load(context.Background()))
	return s, storage
}

func titles(recs []model.PriorityRecommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestRecommendationStore_Load_Empty(t *testing.T) {
	s, _ := loadedRecommendationStore(t)
	assert.Empty(t, s.Recommendations())
}

func TestRecommendationStore_Add_SortsByPriorityDescending(t *testing.T) {
	s, _ := loadedRecommendationStore(t)
	ctx := context.Background()

	for _, in := range []model.RecommendationInput{
		{Category: model.CategoryLearning, Title: "low", ActionRoute: "/a", Priority: 1},
		{Category: model.CategoryLearning, Title: "high", ActionRoute: "/b", Priority: 9},
		{Category: model.CategoryProject, Title: "mid-first", ActionRoute: "/c", Priority: 5},
		{Category: model.CategoryProject, Title: "mid-second", ActionRoute: "/d", Priority: 5},
	} {
		_, err := s.AddRecommendation(ctx, in)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"high", "mid-first", "mid-second", "low"}, titles(s.Recommendations()))
	assert.Equal(t, []string{"high", "mid-first"}, titles(s.Top(2)))
}

func TestRecommendationStore_Add_ReplacesSameCategoryAndRoute(t *testing.T) {
	s, _ := loadedRecommendationStore(t)
	ctx := context.Background()

	_, err := s.AddRecommendation(ctx, model.RecommendationInput{
		Category: model.CategoryWellness, Title: "old", ActionRoute: model.RouteWellness, Priority: 3,
	})
	require.NoError(t, err)
	_, err = s.AddRecommendation(ctx, model.RecommendationInput{
		Category: model.CategoryLearning, Title: "other", ActionRoute: model.RouteWellness, Priority: 1,
	})
	require.NoError(t, err)
	rec, err := s.AddRecommendation(ctx, model.RecommendationInput{
		Category: model.CategoryWellness, Title: "new", ActionRoute: model.RouteWellness, Priority: 2,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.ID, "rec_"), rec.ID)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, []string{"new", "other"}, titles(s.Recommendations()))
}

func TestRecommendationStore_RoundTrip(t *testing.T) {
	s, _ := loadedRecommendationStore(t)
	ctx := context.Background()

	_, err := s.AddRecommendation(ctx, model.RecommendationInput{
		Category: model.CategoryLearning, Title: "Finish Python", Description: "Two tasks left",
		ActionText: "Continue", ActionRoute: model.RouteLearning, Icon: "book", Priority: 7,
	})
	require.NoError(t, err)

	reloaded := NewRecommendationStore(s.kv)
	require.NoError(t, reloaded.Load(ctx))
	if diff := cmp.Diff(s.Recommendations(), reloaded.Recommendations()); diff != "" {
		t.Errorf("reloaded recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommendationStore_RemoveLastDeletesKey(t *testing.T) {
	s, storage := loadedRecommendationStore(t)
	ctx := context.Background()

	rec, err := s.AddRecommendation(ctx, model.RecommendationInput{
		Category: model.CategoryWellness, Title: "only", ActionRoute: model.RouteDashboard,
	})
	require.NoError(t, err)
	_, err = storage.Get(ctx, KeyRecommendations)
	require.NoError(t, err)

	require.NoError(t, s.RemoveRecommendation(ctx, rec.ID))
	assert.Empty(t, s.Recommendations())

	_, err = storage.Get(ctx, KeyRecommendations)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRecommendationStore_RemoveUnknownKeepsList(t *testing.T) {
	s, _ := loadedRecommendationStore(t)
	ctx := context.Background()

	_, err := s.AddRecommendation(ctx, model.RecommendationInput{Category: model.CategoryWellness, Title: "keep"})
	require.NoError(t, err)
	require.NoError(t, s.RemoveRecommendation(ctx, "rec_missing"))
	assert.Len(t, s.Recommendations(), 1)
}

func TestRecommendationStore_ClearAll(t *testing.T) {
	s, storage := loadedRecommendationStore(t)
	ctx := context.Background()

	for _, route := range []string{"/a", "/b"} {
		_, err := s.AddRecommendation(ctx, model.RecommendationInput{Category: model.CategoryLearning, ActionRoute: route})
		require.NoError(t, err)
	}

	require.NoError(t, s.ClearAll(ctx))
	assert.Empty(t, s.Recommendations())
	_, err := storage.Get(ctx, KeyRecommendations)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	reloaded := NewRecommendationStore(storage)
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.Recommendations())
}

func TestRecommendationStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	s, storage := loadedRecommendationStore(t)
	ctx := context.Background()

	_, err := s.AddRecommendation(ctx, model.RecommendationInput{Category: model.CategoryWellness, Title: "kept"})
	require.NoError(t, err)

	storage.FailWrites.Store(true)
	_, err = s.AddRecommendation(ctx, model.RecommendationInput{Category: model.CategoryLearning, Title: "lost"})
	require.ErrorIs(t, err, testutil.ErrInjected)
	require.ErrorIs(t, s.ClearAll(ctx), testutil.ErrInjected)

	assert.Equal(t, []string{"kept"}, titles(s.Recommendations()))
}

func TestRecommendationStore_Add_RejectsSystemCategory(t *testing.T) {
	s, storage := loadedRecommendationStore(t)
	ctx := context.Background()

	for _, c := range []model.Category{model.CategorySystem, model.Category("marketing"), ""} {
		_, err := s.AddRecommendation(ctx, model.RecommendationInput{Category: c, Title: "x"})
		assert.ErrorIs(t, err, ErrInvalidCategory, "category %q", c)
	}
	assert.Empty(t, s.Recommendations())
	assert.Zero(t, storage.Writes.Load())
}

func TestRecommendationStore_UsageBeforeLoad(t *testing.T) {
	s := NewRecommendationStore(testutil.NewTestStorage(t))
	err := s.ClearAll(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}
