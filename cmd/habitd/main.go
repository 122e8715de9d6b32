package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/habitforge/habitd/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.ApplyEnv(config)

	runner := NewRunner(RunnerConfig{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "habitd",
		Usage:    "Track daily habits, streaks and notes from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
		Action:   runner.RunTUI,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
