package store

import (
	"context"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/model"
)

// GamificationStore tracks level, experience and unlocked badges.
// After every update 0 <= CurrentXP < XPToNextLevel holds.
type GamificationStore struct {
	base
	xpPerLevel int
	profile    model.GamificationProfile
}

// NewGamificationStore creates an unloaded gamification store.
func NewGamificationStore(storage kv.Storage, opts ...Option) *GamificationStore {
	o := buildOptions(opts)
	return &GamificationStore{
		base:       newBase(GamificationStoreName, storage, o),
		xpPerLevel: o.xpPerLevel,
		profile:    model.GamificationProfile{Level: 1, Badges: []model.Badge{}},
	}
}

// Load reads the persisted profile. Missing fields default to level 1,
// no experience and no badges.
func (s *GamificationStore) Load(ctx context.Context) error {
	if s == nil {
		return &UsageError{Store: GamificationStoreName}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := loadJSON(ctx, &s.base, KeyGamification, model.GamificationProfile{})
	if err != nil {
		return fmt.Errorf("loading gamification profile: %w", err)
	}

	if p.Level < 1 {
		p.Level = 1
	}
	if p.CurrentXP < 0 {
		p.CurrentXP = 0
	}
	// A profile written under a larger threshold is rolled forward.
	level, xp, _, ok := rollLevels(p.Level, p.CurrentXP, s.xpPerLevel)
	if !ok {
		s.log.Warn("discarding out of range gamification profile",
			zap.Int("level", p.Level),
			zap.Int("currentXP", p.CurrentXP),
		)
		level, xp = 1, 0
	}
	p.Level, p.CurrentXP = level, xp
	if p.Badges == nil {
		p.Badges = []model.Badge{}
	}

	s.profile = p
	s.loaded = true
	return nil
}

// rollLevels converts every full threshold of xp into a level. ok is
// false when the resulting level does not fit in an int.
func rollLevels(level, xp, perLevel int) (newLevel, rest int, leveledUp, ok bool) {
	gained := xp / perLevel
	if gained > math.MaxInt-level {
		return level, xp, false, false
	}
	return level + gained, xp % perLevel, gained > 0, true
}

func (s *GamificationStore) commit(ctx context.Context, updated model.GamificationProfile) error {
	if err := s.saveJSON(ctx, KeyGamification, updated); err != nil {
		return err
	}
	s.profile = updated
	return nil
}

// AddXP awards amount experience points. A single award may cross
// several levels.
func (s *GamificationStore) AddXP(ctx context.Context, amount int) (model.LevelUp, error) {
	if s == nil {
		return model.LevelUp{}, &UsageError{Store: GamificationStoreName}
	}
	if amount < 0 {
		return model.LevelUp{}, fmt.Errorf("adding %d xp: %w", amount, ErrNegativeXP)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.LevelUp{}, &UsageError{Store: GamificationStoreName}
	}

	if amount > math.MaxInt-s.profile.CurrentXP {
		return model.LevelUp{NewLevel: s.profile.Level}, fmt.Errorf("adding %d xp: %w", amount, ErrXPOverflow)
	}

	updated := s.profile
	level, xp, leveledUp, ok := rollLevels(s.profile.Level, s.profile.CurrentXP+amount, s.xpPerLevel)
	if !ok {
		return model.LevelUp{NewLevel: s.profile.Level}, fmt.Errorf("adding %d xp: %w", amount, ErrXPOverflow)
	}
	updated.Level, updated.CurrentXP = level, xp

	if err := s.commit(ctx, updated); err != nil {
		return model.LevelUp{NewLevel: s.profile.Level}, err
	}
	return model.LevelUp{LeveledUp: leveledUp, NewLevel: updated.Level}, nil
}

// UnlockBadge adds a badge unless one with the same id is already
// unlocked. It reports whether the badge was newly unlocked.
func (s *GamificationStore) UnlockBadge(ctx context.Context, id, name, description, icon string) (bool, error) {
	if s == nil {
		return false, &UsageError{Store: GamificationStoreName}
	}
	if id == "" {
		return false, fmt.Errorf("badge id must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false, &UsageError{Store: GamificationStoreName}
	}

	if slices.ContainsFunc(s.profile.Badges, func(b model.Badge) bool { return b.ID == id }) {
		return false, nil
	}

	badge := model.Badge{
		ID:          id,
		Name:        name,
		Description: description,
		Icon:        icon,
		UnlockedAt:  s.now(),
	}

	updated := s.profile
	updated.Badges = make([]model.Badge, 0, len(s.profile.Badges)+1)
	updated.Badges = append(updated.Badges, badge)
	updated.Badges = append(updated.Badges, s.profile.Badges...)

	if err := s.commit(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// Profile returns a copy of the current profile.
func (s *GamificationStore) Profile() model.GamificationProfile {
	if s == nil {
		return model.GamificationProfile{Level: 1}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profile
	p.Badges = slices.Clone(s.profile.Badges)
	return p
}

// Level returns the current level.
func (s *GamificationStore) Level() int {
	return s.Profile().Level
}

// CurrentXP returns the experience accumulated within the current level.
func (s *GamificationStore) CurrentXP() int {
	return s.Profile().CurrentXP
}

// XPToNextLevel returns the per-level threshold.
func (s *GamificationStore) XPToNextLevel() int {
	if s == nil {
		return model.DefaultXPPerLevel
	}
	return s.xpPerLevel
}

// Badges returns the unlocked badges, newest first.
func (s *GamificationStore) Badges() []model.Badge {
	return s.Profile().Badges
}

// HasBadge reports whether the badge id is unlocked.
func (s *GamificationStore) HasBadge(id string) bool {
	return slices.ContainsFunc(s.Badges(), func(b model.Badge) bool { return b.ID == id })
}
