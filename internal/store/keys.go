package store

// Storage keys. The names match what the browser build of the workspace
// wrote to localStorage, so exported data can be loaded as is.
const (
	// KeyNotifications holds []model.Notification, newest first.
	KeyNotifications = "notifications"

	// KeyNotificationSettings holds model.NotificationSettings.
	KeyNotificationSettings = "notificationSettings"

	// KeyGamification holds model.GamificationProfile.
	KeyGamification = "gamification_data"

	// KeyRecommendations holds []model.PriorityRecommendation. The key is
	// absent while the list is empty.
	KeyRecommendations = "ai_recommendations"

	// KeyEnrolledProjects holds []model.Enrollment.
	KeyEnrolledProjects = "enrolledProjects"

	// KeyHasAnalyzed holds the literal text "true" or "false".
	KeyHasAnalyzed = "hasAnalyzedProjects"

	// KeyRecommendedProject holds a bare project id and is absent when
	// no project is recommended.
	KeyRecommendedProject = "recommendedProjectId"

	// KeyModules holds []model.Module.
	KeyModules = "humanai_modules"

	// KeyMood holds []model.MoodEntry, oldest first.
	KeyMood = "humanai_mood"

	// KeyUser holds the signed-in model.User.
	KeyUser = "user"
)
