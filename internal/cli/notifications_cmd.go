package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "List and manage notifications",
	}

	list := newNotificationsListCmd(app)
	cmd.RunE = list.RunE
	cmd.Flags().AddFlagSet(list.Flags())

	cmd.AddCommand(
		list,
		newNotificationsReadCmd(app),
		newNotificationsReadAllCmd(app),
		newNotificationsAddCmd(app),
		newNotificationsSettingsCmd(app),
	)
	return cmd
}

func newNotificationsListCmd(app *App) *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := workspace.NotificationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d unread\n", notifications.UnreadCount())
			for _, n := range notifications.Notifications() {
				if unread && n.Read {
					continue
				}
				printNotification(out, now, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "Only show unread notifications")
	return cmd
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := workspace.NotificationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			if err := notifications.MarkAsRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", notifications.UnreadCount())
			return nil
		},
	}
}

func newNotificationsReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := workspace.NotificationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			if err := notifications.MarkAllAsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked as read")
			return nil
		},
	}
}

func newNotificationsAddCmd(app *App) *cobra.Command {
	var category, title, description, link string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := workspace.NotificationsFrom(cmd.Context())
			if err != nil {
				return err
			}
			n, err := notifications.AddNotification(cmd.Context(), model.Category(category), title, description, link)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "type", string(model.CategorySystem), "Category: learning, wellness, project or system")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&link, "link", "", "Route opened by the notification (defaults by category)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNotificationsSettingsCmd(app *App) *cobra.Command {
	var ai, wellness, projects bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change notification preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := workspace.NotificationsFrom(cmd.Context())
			if err != nil {
				return err
			}

			var patch model.NotificationSettingsPatch
			if cmd.Flags().Changed("ai") {
				patch.AIRecommendations = &ai
			}
			if cmd.Flags().Changed("wellness") {
				patch.WellnessReminders = &wellness
			}
			if cmd.Flags().Changed("projects") {
				patch.NewProjects = &projects
			}

			settings := notifications.Settings()
			if patch != (model.NotificationSettingsPatch{}) {
				if settings, err = notifications.UpdateSettings(cmd.Context(), patch); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ai recommendations: %t\n", settings.AIRecommendations)
			fmt.Fprintf(out, "wellness reminders: %t\n", settings.WellnessReminders)
			fmt.Fprintf(out, "new projects:       %t\n", settings.NewProjects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ai, "ai", true, "AI recommendation alerts")
	cmd.Flags().BoolVar(&wellness, "wellness", true, "Wellness break reminders")
	cmd.Flags().BoolVar(&projects, "projects", false, "New project alerts")

	return cmd
}
