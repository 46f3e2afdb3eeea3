package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/tests/testutil"
)

var (
	treeProject   = model.ProjectRef{ID: "1", Title: "Urban Reforestation", Type: "Environmental"}
	mentorProject = model.ProjectRef{ID: "2", Title: "Digital Mentoring", Type: "Social"}
)

func loadedEnrollmentStore(t *testing.T) (*EnrollmentStore, *testutil.FailingStorage) {
	t.Helper()
	storage := testutil.NewFailingStorage(testutil.NewTestStorage(t))
	s := NewEnrollmentStore(storage, WithClock(fixedClock))
	require.NoError(t, s.Load(context.Background()))
	return s, storage
}

func TestEnrollmentStore_Load_Defaults(t *testing.T) {
	s, _ := loadedEnrollmentStore(t)

	assert.Empty(t, s.Enrollments())
	assert.False(t, s.HasAnalyzed())
	_, ok := s.RecommendedProjectID()
	assert.False(t, ok)
}

func TestEnrollmentStore_EnrollUnenroll(t *testing.T) {
	s, _ := loadedEnrollmentStore(t)
	ctx := context.Background()

	e, created, err := s.Enroll(ctx, treeProject)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "1", e.ProjectID)
	assert.Equal(t, fixedNow, e.EnrolledAt)
	assert.Nil(t, e.MatchScore)
	assert.True(t, s.IsEnrolled("1"))

	require.NoError(t, s.Unenroll(ctx, "1"))
	assert.False(t, s.IsEnrolled("1"))
	assert.Empty(t, s.Enrollments())
}

func TestEnrollmentStore_Enroll_IsIdempotent(t *testing.T) {
	s, _ := loadedEnrollmentStore(t)
	ctx := context.Background()

	_, _, err := s.Enroll(ctx, treeProject)
	require.NoError(t, err)
	_, created, err := s.Enroll(ctx, treeProject)
	require.NoError(t, err)

	assert.False(t, created)
	assert.Len(t, s.Enrollments(), 1)
}

func TestEnrollmentStore_Enroll_KeepsOrder(t *testing.T) {
	s, _ := loadedEnrollmentStore(t)
	ctx := context.Background()

	_, _, err := s.Enroll(ctx, mentorProject)
	require.NoError(t, err)
	_, _, err = s.Enroll(ctx, treeProject)
	require.NoError(t, err)

	got := s.Enrollments()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ProjectID)
	assert.Equal(t, "1", got[1].ProjectID)
}

func TestEnrollmentStore_Enroll_StampsRecommendedMatchScore(t *testing.T) {
	s, _ := loadedEnrollmentStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRecommendedProjectID(ctx, "2"))

	e, _, err := s.Enroll(ctx, mentorProject)
	require.NoError(t, err)
	require.NotNil(t, e.MatchScore)
	assert.Equal(t, model.RecommendedMatchScore, *e.MatchScore)

	other, _, err := s.Enroll(ctx, treeProject)
	require.NoError(t, err)
	assert.Nil(t, other.MatchScore)

	reloaded := NewEnrollmentStore(s.kv)
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.Enrollments()
	require.Len(t, got, 2)
	require.NotNil(t, got[0].MatchScore)
	assert.Equal(t, 98, *got[0].MatchScore)
}

func TestEnrollmentStore_AnalysisFlagsPersistAsText(t *testing.T) {
	s, storage := loadedEnrollmentStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetHasAnalyzed(ctx, true))
	require.NoError(t, s.SetRecommendedProjectID(ctx, "3"))

	raw, err := storage.Get(ctx, KeyHasAnalyzed)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
	raw, err = storage.Get(ctx, KeyRecommendedProject)
	require.NoError(t, err)
	assert.Equal(t, "3", raw)

	reloaded := NewEnrollmentStore(storage)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.HasAnalyzed())
	id, ok := reloaded.RecommendedProjectID()
	assert.True(t, ok)
	assert.Equal(t, "3", id)
}

func TestEnrollmentStore_ClearRecommendedRemovesKey(t *testing.T) {
	s, storage := loadedEnrollmentStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRecommendedProjectID(ctx, "3"))
	require.NoError(t, s.SetRecommendedProjectID(ctx, ""))

	_, ok := s.RecommendedProjectID()
	assert.False(t, ok)
	_, err := storage.Get(ctx, KeyRecommendedProject)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestEnrollmentStore_MalformedListFallsBack(t *testing.T) {
	storage := testutil.NewTestStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, KeyEnrolledProjects, `"nope"`))
	require.NoError(t, storage.Set(ctx, KeyHasAnalyzed, `yes`))

	s := NewEnrollmentStore(storage)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Enrollments())
	assert.False(t, s.HasAnalyzed())
}

func TestEnrollmentStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	s, storage := loadedEnrollmentStore(t)
	ctx := context.Background()
	storage.FailWrites.Store(true)

	_, _, err := s.Enroll(ctx, treeProject)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.False(t, s.IsEnrolled("1"))

	require.ErrorIs(t, s.SetHasAnalyzed(ctx, true), testutil.ErrInjected)
	assert.False(t, s.HasAnalyzed())
}

func TestEnrollmentStore_UsageBeforeLoad(t *testing.T) {
	s := NewEnrollmentStore(testutil.NewTestStorage(t))
	_, _, err := s.Enroll(context.Background(), treeProject)

	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, EnrollmentStoreName, usage.Store)
}
