package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/humanai-workspace/internal/model"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Annotations: map[string]string{annotationNoWorkspace: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(app.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", app.ConfigPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := model.SaveConfig(app.ConfigPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", app.ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Annotations: map[string]string{annotationNoWorkspace: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cfg == nil {
				var err error
				if cfg, err = model.LoadConfig(app.ConfigPath); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:                %s\n", app.ConfigPath)
			fmt.Fprintf(out, "storage.backend:       %s\n", cfg.Storage.Backend)
			switch cfg.Storage.Backend {
			case model.BackendSQLite:
				fmt.Fprintf(out, "storage.path:          %s\n", cfg.Storage.Path)
			case model.BackendKeyring:
				fmt.Fprintf(out, "storage.keyring_dir:   %s\n", cfg.Storage.KeyringDir)
			case model.BackendRedis:
				fmt.Fprintf(out, "storage.redis_addr:    %s\n", cfg.Storage.RedisAddr)
				fmt.Fprintf(out, "storage.redis_prefix:  %s\n", cfg.Storage.RedisPrefix)
			}
			fmt.Fprintf(out, "log:                   %s/%s\n", cfg.Log.Mode, cfg.Log.Level)
			fmt.Fprintf(out, "xp_per_level:          %d\n", cfg.Gamification.XPPerLevel)
			fmt.Fprintf(out, "reminders.interval:    %dm\n", cfg.Reminders.IntervalMin)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newStorageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the persisted state",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List persisted keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspaceFrom(cmd)
			if err != nil {
				return err
			}
			keys, err := ws.Storage().Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				v, err := ws.Storage().Get(cmd.Context(), k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d bytes\n", k, len(v))
			}
			return nil
		},
	})
	return cmd
}
