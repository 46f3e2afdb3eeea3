package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/theme"
)

func newModulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"learn"},
		Short:   "Track learning modules",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List learning modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			for _, m := range ws.Progress.Modules() {
				printModule(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	cmd.RunE = list.RunE

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <module>",
			Short: "Show a module and its tasks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				m, ok := ws.Progress.Module(args[0])
				if !ok {
					return fmt.Errorf("module %q not found", args[0])
				}
				out := cmd.OutOrStdout()
				printModule(out, m)
				fmt.Fprintf(out, "  %s\n", m.Description)
				for _, t := range m.Tasks {
					box := "[ ]"
					if t.Completed {
						box = "[x]"
					}
					fmt.Fprintf(out, "  %s %s %s\n", box, theme.MutedStyle.Render(t.ID), t.Title)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <module> <task>",
			Short: "Toggle a task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				m, err := ws.Progress.ToggleTask(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				printModule(cmd.OutOrStdout(), m)
				return nil
			},
		},
		&cobra.Command{
			Use:   "complete <module>",
			Short: "Mark a module completed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ws, err := workspaceFrom(cmd)
				if err != nil {
					return err
				}
				res, err := ws.CompleteModule(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !res.Completed {
					fmt.Fprintf(out, "Module %s was already completed\n", args[0])
					return nil
				}
				fmt.Fprintln(out, theme.SuccessStyle.Render(fmt.Sprintf("Module completed, +%d XP", res.XP)))
				if res.LevelUp.LeveledUp {
					fmt.Fprintf(out, "Level up! You reached level %d\n", res.LevelUp.NewLevel)
				}
				return nil
			},
		},
	)
	return cmd
}

func newMoodCmd(app *App) *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "mood [happy|neutral|tired|stressed]",
		Short: "Record today's mood or show the history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, e := range ws.Progress.MoodHistory() {
					fmt.Fprintf(out, "%s  %-8s %s\n", e.Date, e.Mood, strings.Repeat("■", max(e.Score, 0)))
				}
				return nil
			}

			mood := strings.ToLower(args[0])
			if !cmd.Flags().Changed("score") {
				s, ok := model.DefaultMoodScore(mood)
				if !ok {
					return fmt.Errorf("unknown mood %q, pass --score to record it anyway", mood)
				}
				score = s
			}
			entry, rec, err := ws.RecordMood(cmd.Context(), mood, score)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Recorded %s for %s\n", entry.Mood, entry.Date)
			if rec != nil {
				fmt.Fprintln(out, "New suggestion:")
				printRecommendation(out, *rec)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Mood score from 1 to 10")
	return cmd
}
