package model

import "time"

// PriorityRecommendation is a replaceable suggestion card shown on the
// dashboard. At most one exists per (Category, ActionRoute) pair.
type PriorityRecommendation struct {
	ID          string    `json:"id"`
	Category    Category  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionText  string    `json:"actionText"`
	ActionRoute string    `json:"actionRoute"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`

	// Priority orders the list; higher is shown first.
	Priority int `json:"priority"`
}

// RecommendationInput carries the caller-supplied fields of a new
// recommendation. ID and CreatedAt are assigned by the store.
type RecommendationInput struct {
	Category    Category
	Title       string
	Description string
	ActionText  string
	ActionRoute string
	Icon        string
	Priority    int
}

// RecommendationCategory reports whether c may label a recommendation card.
// System messages are notifications only.
func RecommendationCategory(c Category) bool {
	switch c {
	case CategoryWellness, CategoryLearning, CategoryProject:
		return true
	}
	return false
}
