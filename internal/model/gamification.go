package model

import "time"

// DefaultXPPerLevel is the experience needed to advance one level.
const DefaultXPPerLevel = 500

// Badge is an achievement unlocked at most once per profile.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// GamificationProfile is the persisted progression state.
type GamificationProfile struct {
	Level     int `json:"level"`
	CurrentXP int `json:"currentXP"`

	// Badges are ordered newest first.
	Badges []Badge `json:"badges"`
}

// LevelUp is the outcome of an XP award.
type LevelUp struct {
	LeveledUp bool
	NewLevel  int
}
