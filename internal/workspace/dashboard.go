package workspace

import (
	"github.com/nhle/humanai-workspace/internal/model"
)

// Dashboard list sizes.
const (
	DashboardRecommendations = 3
	DashboardNotifications   = 5
)

// Dashboard is the read-only summary shown on the home screen.
type Dashboard struct {
	Greeting        string
	User            *model.User
	UnreadCount     int
	Level           int
	CurrentXP       int
	XPToNextLevel   int
	Badges          []model.Badge
	Recommendations []model.PriorityRecommendation
	Notifications   []model.Notification
	Enrollments     int
	ActiveModules   int
}

// Dashboard collects the current summary from every store.
func (w *Workspace) Dashboard() Dashboard {
	d := Dashboard{
		Greeting:        "Hello!",
		UnreadCount:     w.Notifications.UnreadCount(),
		Level:           w.Gamification.Level(),
		CurrentXP:       w.Gamification.CurrentXP(),
		XPToNextLevel:   w.Gamification.XPToNextLevel(),
		Badges:          w.Gamification.Badges(),
		Recommendations: w.Recommendations.Top(DashboardRecommendations),
		Enrollments:     len(w.Projects.Enrollments()),
	}
	if u, err := w.CurrentUser(); err == nil {
		d.User = &u
		if name := firstName(u.Name); name != "" {
			d.Greeting = "Hello, " + name + "!"
		}
	}

	notifications := w.Notifications.Notifications()
	if len(notifications) > DashboardNotifications {
		notifications = notifications[:DashboardNotifications]
	}
	d.Notifications = notifications

	for _, m := range w.Progress.Modules() {
		if m.Status == model.ModuleInProgress {
			d.ActiveModules++
		}
	}
	return d
}
