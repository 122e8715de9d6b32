package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/habitforge/habitd/internal/auth"
	"github.com/habitforge/habitd/internal/remind"
	"github.com/habitforge/habitd/internal/shared"
	"github.com/habitforge/habitd/internal/state"
	"github.com/habitforge/habitd/internal/storage"
	"github.com/habitforge/habitd/internal/update"
)

type RunnerConfig struct {
	Config *shared.Config
	Logger *log.Logger
}

type Runner struct {
	config *shared.Config
	logger *log.Logger
}

func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		config: cfg.Config,
		logger: cfg.Logger,
	}
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		loginCommand(r),
		registerCommand(r),
		forgotPasswordCommand(r),
		resetPasswordCommand(r),
		setupCommand(r),
	}
}

func (r *Runner) openStore() (*storage.SQLiteStore, error) {
	store, err := storage.OpenSQLite(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	return store, nil
}

func (r *Runner) authClient() *auth.Client {
	return auth.NewClient(r.config.API.BaseURL, nil)
}

// RunTUI is the default action: load the snapshot and run the habit TUI.
func (r *Runner) RunTUI(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	st := state.New(store, r.logger)
	st.Load(ctx)

	runtimeCfg := update.RuntimeConfigFrom(r.config)
	engine := remind.NewEngine(runtimeCfg.ReminderBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if runtimeCfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithConfig(st, engine, notifier, runtimeCfg)
	m.ScheduleAllReminders()

	if session, err := auth.LoadSession(ctx, store); err == nil {
		r.logger.Info("signed in", "email", session.User.Email)
	}

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("habitd failed: %w", err)
	}
	return nil
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the snapshot database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		r.logger.Warn("config file not created", "err", err)
	} else {
		r.logger.Info("config file created", "path", path)
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r.logger.Info("snapshot database ready", "path", r.config.Database.Path)
	return nil
}
