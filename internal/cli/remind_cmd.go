package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/reminder"
)

func newRemindCmd(app *App) *cobra.Command {
	var once bool
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Post wellness break reminders until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			interval := every
			if interval <= 0 && app.Config != nil {
				interval = time.Duration(app.Config.Reminders.IntervalMin) * time.Minute
			}
			sched := reminder.New(ws.Notifications, interval, app.logger().Named("reminder"))

			if once {
				return printReminder(cmd, sched.Remind(cmd.Context()))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched.Start()
			defer sched.Stop()
			fmt.Fprintf(out, "Reminding every %s, press Ctrl+C to stop\n", sched.Interval())

			for {
				select {
				case <-ctx.Done():
					return nil
				case r := <-sched.Results():
					if err := printReminder(cmd, r); err != nil {
						app.logger().Warn("reminder failed", zap.Error(err))
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Post a single reminder and exit")
	cmd.Flags().DurationVar(&every, "every", 0, "Reminder interval (defaults to reminders.interval_min)")
	return cmd
}

func printReminder(cmd *cobra.Command, r reminder.Result) error {
	out := cmd.OutOrStdout()
	switch {
	case r.Error != nil:
		return r.Error
	case r.Skipped:
		fmt.Fprintln(out, "Wellness reminders are disabled")
	case r.Notification != nil:
		fmt.Fprintf(out, "%s %s\n", time.Now().Format("15:04"), r.Notification.Title)
	}
	return nil
}
