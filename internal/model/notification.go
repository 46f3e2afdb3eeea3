package model

import "time"

// Category identifies which area of the workspace a notification or
// recommendation belongs to.
type Category string

const (
	CategoryLearning Category = "learning"
	CategoryWellness Category = "wellness"
	CategoryProject  Category = "project"
	CategorySystem   Category = "system"
)

// Workspace routes used as navigation targets.
const (
	RouteDashboard = "/dashboard"
	RouteLearning  = "/aprendizagem"
	RouteWellness  = "/bem-estar"
	RouteProjects  = "/projetos"
	RouteSettings  = "/configuracoes"
)

// DefaultRoute returns the section route a category navigates to when a
// record carries no explicit link.
func (c Category) DefaultRoute() string {
	switch c {
	case CategoryLearning:
		return RouteLearning
	case CategoryWellness:
		return RouteWellness
	case CategoryProject:
		return RouteProjects
	case CategorySystem:
		return RouteDashboard
	default:
		return ""
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c.DefaultRoute() != ""
}

// Notification represents an alert surfaced to the user in the header bell.
type Notification struct {
	// ID is unique within the notification store.
	ID string `json:"id"`

	// Category is persisted under "type" to stay readable by older clients.
	Category Category `json:"type"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is set once when the notification is created.
	CreatedAt time.Time `json:"createdAt"`

	// Link is the optional route opened when the notification is clicked.
	Link string `json:"link,omitempty"`
}

// NotificationSettings holds the user's notification toggles.
type NotificationSettings struct {
	AIRecommendations bool `json:"aiRecommendations"`
	WellnessReminders bool `json:"wellnessReminders"`
	NewProjects       bool `json:"newProjects"`
}

// DefaultNotificationSettings returns the settings applied on first load.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		AIRecommendations: true,
		WellnessReminders: true,
		NewProjects:       false,
	}
}

// NotificationSettingsPatch is a partial settings update. Nil fields are
// left untouched.
type NotificationSettingsPatch struct {
	AIRecommendations *bool
	WellnessReminders *bool
	NewProjects       *bool
}

// Apply returns s with every non-nil field of p merged in.
func (p NotificationSettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	if p.AIRecommendations != nil {
		s.AIRecommendations = *p.AIRecommendations
	}
	if p.WellnessReminders != nil {
		s.WellnessReminders = *p.WellnessReminders
	}
	if p.NewProjects != nil {
		s.NewProjects = *p.NewProjects
	}
	return s
}
