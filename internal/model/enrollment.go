package model

import "time"

// RecommendedMatchScore is stamped onto an enrollment for the project the
// compatibility analysis recommended.
const RecommendedMatchScore = 98

// Enrollment records that the user joined a catalog project.
type Enrollment struct {
	ProjectID  string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	EnrolledAt time.Time `json:"enrolledAt"`

	// MatchScore is a percentage, set only for the recommended project.
	MatchScore *int `json:"matchScore,omitempty"`
}

// ProjectRef identifies a project being enrolled in.
type ProjectRef struct {
	ID    string
	Title string
	Type  string
}

// CatalogProject is a social or environmental project offered to the user.
type CatalogProject struct {
	ID           string
	Title        string
	Type         string
	Difficulty   string
	Description  string
	Participants int
	Duration     string

	// Affinity is the base compatibility used by the project analysis.
	Affinity int
}

// Ref returns the enrollment reference for p.
func (p CatalogProject) Ref() ProjectRef {
	return ProjectRef{ID: p.ID, Title: p.Title, Type: p.Type}
}
