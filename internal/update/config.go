package update

import "github.com/habitforge/habitd/internal/shared"

type RuntimeConfig struct {
	DesktopNotifications bool
	ProgressStep         int
	DefaultReminder      string
	ReminderBuffer       int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		ProgressStep:         20,
		DefaultReminder:      "09:00",
		ReminderBuffer:       64,
	}
}

// RuntimeConfigFrom maps the file-level config onto the TUI runtime knobs.
func RuntimeConfigFrom(cfg *shared.Config) RuntimeConfig {
	out := DefaultRuntimeConfig()
	if cfg == nil {
		return out
	}
	out.DesktopNotifications = cfg.Notifications.Desktop
	if cfg.Habits.ProgressStep > 0 {
		out.ProgressStep = cfg.Habits.ProgressStep
	}
	if cfg.Habits.DefaultReminder != "" {
		out.DefaultReminder = cfg.Habits.DefaultReminder
	}
	return out
}
