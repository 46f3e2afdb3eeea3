package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/theme"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Browse and join impact projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog projects, recommended first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			rec, _ := ws.Projects.RecommendedProjectID()
			out := cmd.OutOrStdout()
			for _, p := range ws.OrderedProjects() {
				marker := "  "
				if ws.Projects.IsEnrolled(p.ID) {
					marker = theme.SuccessStyle.Render("✓ ")
				}
				fmt.Fprintf(out, "%s%s %s %s", marker, theme.MutedStyle.Render(p.ID), p.Title,
					theme.MutedStyle.Render(fmt.Sprintf("[%s, %s, %s, %d participants]", p.Type, p.Difficulty, p.Duration, p.Participants)))
				if p.ID == rec {
					fmt.Fprint(out, theme.UnreadStyle.Render(" recommended"))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.RunE = list.RunE

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "enroll <id>",
			Short: "Join a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				e, err := ws.EnrollProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Enrolled in %s", e.Title)
				if e.MatchScore != nil {
					msg += fmt.Sprintf(" (%d%% match)", *e.MatchScore)
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render(msg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "unenroll <id>",
			Short: "Leave a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				if err := ws.UnenrollProject(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Left project %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "analyze",
			Short: "Find the project that fits you best",
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				p, err := ws.AnalyzeProjects(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recommended project: %s (%s)\n", p.Title, p.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget the project analysis",
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				if err := ws.ResetAnalysis(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Project analysis reset")
				return nil
			},
		},
	)
	return cmd
}
