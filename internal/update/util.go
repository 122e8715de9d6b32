package update

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/habitforge/habitd/internal/state"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func isSaveWarning(err error) bool {
	return errors.Is(err, state.ErrSaveFailed)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

type globalKeyMapBindings struct{}

func (globalKeyMapBindings) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "habits")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "stats")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "calendar")),
		key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "notes")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (g globalKeyMapBindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{g.ShortHelp()}
}
