package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/cli"
	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/logging"
	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/workspace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("WORKSPACE_CONFIG")
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	app := &cli.App{ConfigPath: configPath}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Setup = func(ctx context.Context, path string) error {
		return setup(ctx, app, path)
	}
	defer func() {
		if app.Log != nil {
			_ = app.Log.Sync()
		}
	}()
	defer app.Close()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

// setup loads the config, builds the logger, opens the storage backend
// and loads the workspace.
func setup(ctx context.Context, app *cli.App, path string) error {
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	storage, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	ws, err := workspace.Open(ctx, storage,
		workspace.WithLogger(log),
		workspace.WithXPPerLevel(cfg.Gamification.XPPerLevel),
		workspace.WithClock(func() time.Time { return time.Now().UTC() }),
	)
	if err != nil {
		_ = storage.Close()
		return err
	}

	log.Debug("workspace ready",
		zap.String("config", path),
		zap.String("backend", cfg.Storage.Backend),
	)

	app.Config = cfg
	app.Log = log
	app.Workspace = ws
	return nil
}
