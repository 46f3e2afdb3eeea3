package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// EnrollmentStore tracks the catalog projects the user joined and the
// outcome of the one-shot compatibility analysis. The three values are
// persisted under independent keys.
type EnrollmentStore struct {
	base
	enrollments   []model.Enrollment
	hasAnalyzed   bool
	recommendedID string
}

// NewEnrollmentStore creates an unloaded enrollment store.
func NewEnrollmentStore(storage kv.Storage, opts ...Option) *EnrollmentStore {
	return &EnrollmentStore{
		base:        newBase(EnrollmentStoreName, storage, buildOptions(opts)),
		enrollments: []model.Enrollment{},
	}
}

// Load reads the enrollment list, the analyzed flag and the recommended
// project id.
func (s *EnrollmentStore) Load(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: EnrollmentStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments, _, err := loadJSON[[]model.Enrollment](ctx, &s.base, KeyEnrolledProjects, nil)
	if err != nil {
		return fmt.Errorf("loading enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}

	analyzed, err := s.readText(ctx, KeyHasAnalyzed)
	if err != nil {
		return fmt.Errorf("loading analysis flag: %w", err)
	}

	recommended, err := s.readText(ctx, KeyRecommendedProject)
	if err != nil {
		return fmt.Errorf("loading recommended project: %w", err)
	}

	s.enrollments = enrollments
	s.hasAnalyzed = analyzed == "true"
	s.recommendedID = recommended
	s.loaded = true
	return nil
}

// readText returns the raw value under key, or "" when absent.
func (s *EnrollmentStore) readText(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *EnrollmentStore) commit(ctx context.Context, updated []model.Enrollment) error {
	if err := s.saveJSON(ctx, KeyEnrolledProjects, updated); err != nil {
		return err
	}
	s.enrollments = updated
	return nil
}

// Enroll records an enrollment in project. It is a no-op returning the
// existing record when the project is already enrolled. The recommended
// project is stamped with model.RecommendedMatchScore.
func (s *EnrollmentStore) Enroll(ctx context.Context, project model.ProjectRef) (model.Enrollment, bool, error) {
	if s == nil {
		return model.Enrollment{}, false, &UsageError{Store: EnrollmentStoreName}
	}
	if project.ID == "" {
		return model.Enrollment{}, false, fmt.Errorf("project id must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.Enrollment{}, false, &UsageError{Store: EnrollmentStoreName}
	}

	if i := s.indexOf(project.ID); i >= 0 {
		return s.enrollments[i], false, nil
	}

	e := model.Enrollment{
		ProjectID:  project.ID,
		Title:      project.Title,
		Type:       project.Type,
		EnrolledAt: s.now(),
	}
	if s.recommendedID != "" && project.ID == s.recommendedID {
		score := model.RecommendedMatchScore
		e.MatchScore = &score
	}

	updated := append(slices.Clone(s.enrollments), e)
	if err := s.commit(ctx, updated); err != nil {
		return model.Enrollment{}, false, err
	}
	s.log.Debug("enrolled", zap.String("project", project.ID))
	return e, true, nil
}

// Unenroll removes the enrollment for projectID, if any.
func (s *EnrollmentStore) Unenroll(ctx context.Context, projectID string) error {
	if s == nil {
		return &UsageError{Store: EnrollmentStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: EnrollmentStoreName}
	}

	updated := slices.DeleteFunc(slices.Clone(s.enrollments), func(e model.Enrollment) bool {
		return e.ProjectID == projectID
	})
	return s.commit(ctx, updated)
}

func (s *EnrollmentStore) indexOf(projectID string) int {
	return slices.IndexFunc(s.enrollments, func(e model.Enrollment) bool {
		return e.ProjectID == projectID
	})
}

// IsEnrolled reports whether projectID is enrolled.
func (s *EnrollmentStore) IsEnrolled(projectID string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(projectID) >= 0
}

// Enrollments returns a copy of the enrollment list in enrollment order.
func (s *EnrollmentStore) Enrollments() []model.Enrollment {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.enrollments)
}

// SetHasAnalyzed persists whether the compatibility analysis has run.
func (s *EnrollmentStore) SetHasAnalyzed(ctx context.Context, analyzed bool) error {
	if s == nil {
		return &UsageError{Store: EnrollmentStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: EnrollmentStoreName}
	}

	if err := s.kv.Set(ctx, KeyHasAnalyzed, strconv.FormatBool(analyzed)); err != nil {
		return fmt.Errorf("persisting %s: %w", KeyHasAnalyzed, err)
	}
	s.hasAnalyzed = analyzed
	return nil
}

// HasAnalyzed reports whether the compatibility analysis has run.
func (s *EnrollmentStore) HasAnalyzed() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasAnalyzed
}

// SetRecommendedProjectID records the project the analysis recommended.
// An empty id clears the recommendation and removes its key.
func (s *EnrollmentStore) SetRecommendedProjectID(ctx context.Context, projectID string) error {
	if s == nil {
		return &UsageError{Store: EnrollmentStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return &UsageError{Store: EnrollmentStoreName}
	}

	var err error
	if projectID == "" {
		err = s.kv.Remove(ctx, KeyRecommendedProject)
	} else {
		err = s.kv.Set(ctx, KeyRecommendedProject, projectID)
	}
	if err != nil {
		return fmt.Errorf("persisting %s: %w", KeyRecommendedProject, err)
	}
	s.recommendedID = projectID
	return nil
}

// RecommendedProjectID returns the recommended project id and whether one
// is set.
func (s *EnrollmentStore) RecommendedProjectID() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendedID, s.recommendedID != ""
}
