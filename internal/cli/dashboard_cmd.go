package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/theme"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"home"},
		Short:   "Show the workspace summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			d := ws.Dashboard()
			out := cmd.OutOrStdout()

			var summary strings.Builder
			fmt.Fprintf(&summary, "Level %d  %s %d/%d XP\n", d.Level,
				theme.ProgressBar(d.CurrentXP*100/max(d.XPToNextLevel, 1), 20), d.CurrentXP, d.XPToNextLevel)
			fmt.Fprintf(&summary, "%d unread notifications, %d badges, %d projects, %d modules in progress",
				d.UnreadCount, len(d.Badges), d.Enrollments, d.ActiveModules)

			fmt.Fprintln(out, theme.HeaderStyle.Render(d.Greeting))
			fmt.Fprintln(out, theme.PanelStyle.Render(summary.String()))

			if len(d.Recommendations) > 0 {
				fmt.Fprintln(out, "\nRecommended for you")
				for _, r := range d.Recommendations {
					printRecommendation(out, r)
				}
			}

			fmt.Fprintln(out, "\nLatest notifications")
			if len(d.Notifications) == 0 {
				fmt.Fprintln(out, theme.MutedStyle.Render("  nothing new"))
			}
			now := time.Now()
			for _, n := range d.Notifications {
				printNotification(out, now, n)
			}
			return nil
		},
	}
}
