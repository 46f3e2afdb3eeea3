package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/store"
	"github.com/nhle/humanai-workspace/internal/workspace"
	"github.com/nhle/humanai-workspace/tests/testutil"
)

// testApp wires an App backed by an in-memory workspace.
func testApp(t *testing.T) *App {
	t.Helper()
	ws, err := workspace.Open(context.Background(), testutil.NewTestStorage(t),
		workspace.WithClock(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return &App{
		Workspace:  ws,
		Config:     model.DefaultAppConfig(),
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, err = executeCmd(t, app, "login", "--email", "ana@example.com")
	assert.ErrorIs(t, err, workspace.ErrMissingCredentials)

	out, err = executeCmd(t, app, "login", "--email", "ana@example.com", "--password", "pw", "--name", "Ana Silva")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ana Silva")

	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Silva <ana@example.com>")

	_, err = executeCmd(t, app, "logout")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLogin_PromptsWhenInteractive(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.PromptLogin = func(email, password, name *string) error {
		*email = "joao@example.com"
		*password = "pw"
		return nil
	}

	out, err := executeCmd(t, app, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as joao")
}

func TestDashboardCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "login", "--email", "ana@example.com", "--password", "pw", "--name", "Ana Silva")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, Ana!")
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "3 unread notifications")
	assert.Contains(t, out, "Latest notifications")
}

func TestNotificationsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "notifications")
	require.NoError(t, err)
	assert.Contains(t, out, "3 unread")

	out, err = executeCmd(t, app, "notifications", "add", "--type", "wellness", "--title", "Drink water")
	require.NoError(t, err)
	assert.Contains(t, out, "Added notif_")
	assert.Equal(t, model.RouteWellness, app.Workspace.Notifications.Notifications()[0].Link)

	_, err = executeCmd(t, app, "notifications", "add", "--type", "spam", "--title", "Buy")
	assert.Error(t, err)

	out, err = executeCmd(t, app, "notifications", "read", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "3 unread")

	_, err = executeCmd(t, app, "notifications", "read-all")
	require.NoError(t, err)
	assert.Equal(t, 0, app.Workspace.Notifications.UnreadCount())

	out, err = executeCmd(t, app, "notifications", "list", "--unread")
	require.NoError(t, err)
	assert.NotContains(t, out, "Drink water")
}

func TestNotificationsSettingsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "notifications", "settings", "--projects", "--wellness=false")
	require.NoError(t, err)
	assert.Contains(t, out, "new projects:       true")
	assert.Contains(t, out, "wellness reminders: false")

	assert.Equal(t, model.NotificationSettings{
		AIRecommendations: true,
		WellnessReminders: false,
		NewProjects:       true,
	}, app.Workspace.Notifications.Settings())
}

func TestXPAndBadgeCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "xp", "add", "1300")
	require.NoError(t, err)
	assert.Contains(t, out, "Level up! You reached level 3")
	assert.Contains(t, out, "300/500 XP")

	_, err = executeCmd(t, app, "xp", "add", "-5")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "xp", "add", "lots")
	assert.Error(t, err)

	out, err = executeCmd(t, app, "badge", "unlock", "early-bird", "--name", "Early bird")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlocked Early bird")
	out, err = executeCmd(t, app, "badge", "unlock", "early-bird")
	require.NoError(t, err)
	assert.Contains(t, out, "already unlocked")

	out, err = executeCmd(t, app, "xp")
	require.NoError(t, err)
	assert.Contains(t, out, "Early bird")
}

func TestRecsCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "recs")
	require.NoError(t, err)
	assert.Contains(t, out, "No recommendations")

	_, err = executeCmd(t, app, "recs", "add", "--title", "Low", "--route", "/a", "--priority", "1")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "recs", "add", "--title", "High", "--route", "/b", "--priority", "9")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "recs", "add", "--type", "system", "--title", "Update")
	assert.ErrorIs(t, err, store.ErrInvalidCategory)

	recs := app.Workspace.Recommendations.Recommendations()
	require.Len(t, recs, 2)
	assert.Equal(t, "High", recs[0].Title)

	_, err = executeCmd(t, app, "recs", "remove", recs[0].ID)
	require.NoError(t, err)
	assert.Len(t, app.Workspace.Recommendations.Recommendations(), 1)

	_, err = executeCmd(t, app, "recs", "clear")
	require.NoError(t, err)
	assert.Empty(t, app.Workspace.Recommendations.Recommendations())
}

func TestProjectsCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "projects", "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended project: Digital Mentoring for Youth (2)")

	out, err = executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "recommended")

	out, err = executeCmd(t, app, "projects", "enroll", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "98% match")
	assert.Equal(t, workspace.XPFirstProject, app.Workspace.Gamification.CurrentXP())

	_, err = executeCmd(t, app, "projects", "enroll", "42")
	assert.ErrorIs(t, err, workspace.ErrUnknownProject)

	_, err = executeCmd(t, app, "projects", "unenroll", "2")
	require.NoError(t, err)
	assert.False(t, app.Workspace.Projects.IsEnrolled("2"))

	_, err = executeCmd(t, app, "projects", "reset")
	require.NoError(t, err)
	assert.Equal(t, workspace.NotAnalyzed, app.Workspace.AnalysisState())
}

func TestModulesCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "Python for Data Analysis")
	assert.Contains(t, out, "60%")

	out, err = executeCmd(t, app, "modules", "toggle", "python-basics", "t4")
	require.NoError(t, err)
	assert.Contains(t, out, "80%")

	out, err = executeCmd(t, app, "modules", "show", "python-basics")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")

	out, err = executeCmd(t, app, "modules", "complete", "python-basics")
	require.NoError(t, err)
	assert.Contains(t, out, "+100 XP")

	out, err = executeCmd(t, app, "modules", "complete", "python-basics")
	require.NoError(t, err)
	assert.Contains(t, out, "already completed")

	_, err = executeCmd(t, app, "modules", "toggle", "python-basics", "t99")
	assert.Error(t, err)
}

func TestMoodCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mood", "tired")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded tired for 2025-03-10")
	assert.Contains(t, out, "New suggestion")

	_, err = executeCmd(t, app, "mood", "hungry")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "mood", "hungry", "--score", "5")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "mood")
	require.NoError(t, err)
	assert.Contains(t, out, "hungry")
	assert.Len(t, app.Workspace.Progress.MoodHistory(), 2)
}

func TestRemindOnce(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "Time for a break")

	_, err = executeCmd(t, app, "notifications", "settings", "--wellness=false")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled")
}

func TestConfigCmds(t *testing.T) {
	app := &App{ConfigPath: filepath.Join(t.TempDir(), "nested", "config.yaml")}
	app.Setup = func(ctx context.Context, path string) error {
		t.Fatal("config commands must not open the workspace")
		return nil
	}

	out, err := executeCmd(t, app, "config", "init", "--config", app.ConfigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	_, err = executeCmd(t, app, "config", "init")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "config", "init", "--force")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "storage.backend:       sqlite")
	assert.Contains(t, out, "xp_per_level:          500")
}

func TestStorageKeysCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "storage", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "notifications")
}

func TestSetupRunsBeforeWorkspaceCommands(t *testing.T) {
	ready := testApp(t)
	app := &App{ConfigPath: "ignored.yaml"}
	var gotPath string
	app.Setup = func(ctx context.Context, path string) error {
		gotPath = path
		app.Workspace = ready.Workspace
		return nil
	}

	_, err := executeCmd(t, app, "xp")
	require.NoError(t, err)
	assert.Equal(t, "ignored.yaml", gotPath)
}

func TestCommandsWithoutWorkspace(t *testing.T) {
	tests := []struct {
		args      []string
		wantStore string
	}{
		{args: []string{"dashboard"}, wantStore: "workspace"},
		{args: []string{"notifications"}, wantStore: store.NotificationStoreName},
		{args: []string{"xp"}, wantStore: store.GamificationStoreName},
		{args: []string{"recs", "list"}, wantStore: store.RecommendationStoreName},
		{args: []string{"projects"}, wantStore: "workspace"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			_, err := executeCmd(t, &App{ConfigPath: "x.yaml"}, tt.args...)
			var missing *workspace.MissingStoreError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantStore, missing.Store)
			assert.ErrorIs(t, err, workspace.ErrNoWorkspace)
		})
	}
}

func TestRootAttachesWorkspaceToContext(t *testing.T) {
	app := testApp(t)
	opened := app.Workspace
	app.Workspace = nil
	app.Setup = func(ctx context.Context, path string) error {
		app.Workspace = opened
		return nil
	}

	out, err := executeCmd(t, app, "xp")
	require.NoError(t, err)
	assert.Contains(t, out, "Level 1  0/500 XP")
}
