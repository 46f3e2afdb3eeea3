package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

func newRecsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recs",
		Aliases: []string{"recommendations"},
		Short:   "Manage AI recommendation cards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recommendations, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := workspace.RecommendationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			cards := recs.Recommendations()
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recommendations")
			}
			for _, r := range cards {
				printRecommendation(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	cmd.RunE = list.RunE

	cmd.AddCommand(
		list,
		newRecsAddCmd(app),
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a recommendation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := workspace.RecommendationsFrom(cmd.Context())
				if err != nil {
					return err
				}
				return recs.RemoveRecommendation(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every recommendation",
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := workspace.RecommendationsFrom(cmd.Context())
				if err != nil {
					return err
				}
				if err := recs.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Recommendations cleared")
				return nil
			},
		},
	)
	return cmd
}

func newRecsAddCmd(app *App) *cobra.Command {
	var in model.RecommendationInput
	var category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := workspace.RecommendationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			in.Category = model.Category(category)
			if in.ActionRoute == "" {
				in.ActionRoute = in.Category.DefaultRoute()
			}
			r, err := recs.AddRecommendation(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "type", string(model.CategoryLearning), "Category: learning, wellness or project")
	cmd.Flags().StringVar(&in.Title, "title", "", "Title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&in.ActionText, "action", "Open", "Action button text")
	cmd.Flags().StringVar(&in.ActionRoute, "route", "", "Action route (defaults by category)")
	cmd.Flags().StringVar(&in.Icon, "icon", "sparkles", "Icon name")
	cmd.Flags().IntVar(&in.Priority, "priority", 0, "Priority; higher is shown first")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
