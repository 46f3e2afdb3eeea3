package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/theme"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

// loginForm prompts for credentials with a huh form.
func loginForm(email, password, name *string) error {
	required := func(s string) error {
		if s == "" {
			return errors.New("required")
		}
		return nil
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(required),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(required),
			huh.NewInput().
				Title("Name").
				Placeholder("optional").
				Value(name),
		),
	)
	return form.Run()
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			if (email == "" || password == "") && app.interactive() {
				prompt := app.PromptLogin
				if prompt == nil {
					prompt = loginForm
				}
				if err := prompt(&email, &password, &name); err != nil {
					return err
				}
			}

			u, err := ws.Login(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render(fmt.Sprintf("Signed in as %s (%s)", u.Name, u.Email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (checked for presence only)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the email user)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			if err := ws.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			u, err := ws.CurrentUser()
			if errors.Is(err, workspace.ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s <%s>\n", theme.HeaderStyle.Render(u.Avatar), u.Name, u.Email)
			return nil
		},
	}
}
