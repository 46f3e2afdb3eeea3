package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

// annotationNoWorkspace marks commands that run without opening storage.
const annotationNoWorkspace = "no-workspace"

// App holds the state shared by every command.
type App struct {
	Workspace  *workspace.Workspace
	Config     *model.AppConfig
	ConfigPath string
	Log        *zap.Logger

	// Setup opens the workspace from the config file at path. It runs
	// before any command that needs the workspace when Workspace is nil.
	Setup func(ctx context.Context, path string) error

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// PromptLogin asks for credentials when they are not given as flags.
	PromptLogin func(email, password, name *string) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

// Close releases the workspace, if one was opened.
func (a *App) Close() error {
	if a.Workspace == nil {
		return nil
	}
	err := a.Workspace.Close()
	a.Workspace = nil
	return err
}

// workspaceFrom returns the workspace the root command attached to the
// command context.
func workspaceFrom(cmd *cobra.Command) (*workspace.Workspace, error) {
	return workspace.Require(cmd.Context())
}

// NewRootCmd creates the top-level "workspace" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "workspace",
		Short:         "Human.AI learning, wellness and impact workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoWorkspace] == "true" {
				return nil
			}
			if app.Workspace == nil && app.Setup != nil {
				if err := app.Setup(cmd.Context(), app.ConfigPath); err != nil {
					return fmt.Errorf("opening workspace: %w", err)
				}
			}
			if app.Workspace != nil {
				cmd.SetContext(workspace.WithWorkspace(cmd.Context(), app.Workspace))
			}
			return nil
		},
	}

	if app.ConfigPath == "" {
		app.ConfigPath = model.DefaultConfigPath()
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", app.ConfigPath, "Path to the config file")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newNotificationsCmd(app),
		newXPCmd(app),
		newBadgeCmd(app),
		newRecsCmd(app),
		newProjectsCmd(app),
		newModulesCmd(app),
		newMoodCmd(app),
		newRemindCmd(app),
		newConfigCmd(app),
		newStorageCmd(app),
	)

	return root
}
