package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/commands"
	"github.com/habitforge/habitd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			habit, err := m.State.AddHabit(ctx, a.Name, a.Category, "")
			if err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			m.Cursor = 0
			m.scheduleHabitReminder(habit)
			m.CurrentView = ViewHabits
			return commands.Result{Message: fmt.Sprintf("added habit: %s", habit.Name)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			habit, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.State.ToggleHabit(ctx, habit.ID)
			if err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			return commands.Result{Message: toggleMessage(updated.Name, updated.Completed)}, nil
		},
		Progress: func(a commands.ProgressArgs) (commands.Result, error) {
			habit, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.State.AddProgress(ctx, habit.ID, m.progressStep)
			if err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s at %d%%", updated.Name, updated.Progress)}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			habit, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.State.SetReminder(ctx, habit.ID, a.Time)
			if err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			if m.Reminders != nil {
				m.Reminders.Cancel(habit.ID)
			}
			m.scheduleHabitReminder(updated)
			return commands.Result{Message: fmt.Sprintf("reminder set for %s at %s", updated.Name, a.Time)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			habit, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.State.DeleteHabit(ctx, habit.ID); err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			if m.Reminders != nil {
				m.Reminders.Cancel(habit.ID)
			}
			return commands.Result{Message: fmt.Sprintf("deleted habit: %s", habit.Name)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			note, err := m.State.AddNote(ctx, a.Text)
			if err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("note saved (%s)", note.Date.Format("2006-01-02"))}, nil
		},
		Reset: func() (commands.Result, error) {
			if err := m.State.ResetAllHabits(ctx); err != nil && !isSaveWarning(err) {
				return commands.Result{}, err
			}
			return commands.Result{Message: "all habits reset, history kept"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m Model) resolveTarget(target string) (model.Habit, error) {
	if target != commands.TargetSelected {
		return model.Habit{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "only target 'selected' is supported"}
	}
	habit, ok := m.selectedHabit()
	if !ok {
		return model.Habit{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no habit selected"}
	}
	return habit, nil
}
