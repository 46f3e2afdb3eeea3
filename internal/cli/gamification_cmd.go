package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/theme"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

func newXPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Show level and experience",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := workspace.GamificationFrom(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Level %d  %d/%d XP\n", g.Level(), g.CurrentXP(), g.XPToNextLevel())
			for _, b := range g.Badges() {
				fmt.Fprintf(out, "  %s %s %s\n", b.Name, theme.MutedStyle.Render(b.ID), b.Description)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <amount>",
		Short: "Award experience points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := workspace.GamificationFrom(cmd.Context())
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			up, err := g.AddXP(cmd.Context(), amount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if up.LeveledUp {
				fmt.Fprintln(out, theme.SuccessStyle.Render(fmt.Sprintf("Level up! You reached level %d", up.NewLevel)))
			}
			fmt.Fprintf(out, "Level %d  %d/%d XP\n", g.Level(), g.CurrentXP(), g.XPToNextLevel())
			return nil
		},
	})
	return cmd
}

func newBadgeCmd(app *App) *cobra.Command {
	var name, description, icon string

	unlock := &cobra.Command{
		Use:   "unlock <id>",
		Short: "Unlock a badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := workspace.GamificationFrom(cmd.Context())
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}
			added, err := g.UnlockBadge(cmd.Context(), args[0], name, description, icon)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Badge %s already unlocked\n", args[0])
			}
			return nil
		},
	}
	unlock.Flags().StringVar(&name, "name", "", "Badge name")
	unlock.Flags().StringVar(&description, "description", "", "Badge description")
	unlock.Flags().StringVar(&icon, "icon", "award", "Badge icon")

	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Manage badges",
	}
	cmd.AddCommand(unlock)
	return cmd
}
