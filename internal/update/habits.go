package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/model"
	"github.com/habitforge/habitd/internal/views"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	habits := m.State.Habits()
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(habits)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "a":
		m.Input = InputAdd
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.Status = StatusBar{Text: "type habit name, optional trailing #category, enter to save", IsError: false}
	case "t":
		if habit, ok := m.selectedHabit(); ok {
			updated, err := m.State.ToggleHabit(context.Background(), habit.ID)
			m.applyResult(err, toggleMessage(updated.Name, updated.Completed))
		}
	case "p":
		if habit, ok := m.selectedHabit(); ok {
			updated, err := m.State.AddProgress(context.Background(), habit.ID, m.progressStep)
			m.applyResult(err, fmt.Sprintf("%s at %d%%", updated.Name, updated.Progress))
		}
	case "r":
		if _, ok := m.selectedHabit(); ok {
			m.Input = InputRemind
			m.remindInput.SetValue("")
			m.remindInput.Focus()
			m.Status = StatusBar{Text: "type HH:MM, empty to clear, enter to save", IsError: false}
		}
	case "d":
		if habit, ok := m.selectedHabit(); ok {
			err := m.State.DeleteHabit(context.Background(), habit.ID)
			if m.Reminders != nil {
				m.Reminders.Cancel(habit.ID)
			}
			m.applyResult(err, fmt.Sprintf("deleted %s", habit.Name))
		}
	case "R":
		err := m.State.ResetAllHabits(context.Background())
		m.applyResult(err, "all habits reset, history kept")
	}
	return m
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Input = InputNone
		m.addInput.Blur()
		m.remindInput.Blur()
		m.noteArea.Blur()
		m.Status = StatusBar{Text: "capture cancelled", IsError: false}
		return m
	case "enter":
		return m.commitCapture()
	}

	var cmd tea.Cmd
	switch m.Input {
	case InputAdd:
		m.addInput, cmd = m.addInput.Update(msg)
	case InputRemind:
		m.remindInput, cmd = m.remindInput.Update(msg)
	case InputNote:
		m.noteArea, cmd = m.noteArea.Update(msg)
	}
	_ = cmd
	return m
}

func (m Model) commitCapture() Model {
	ctx := context.Background()
	switch m.Input {
	case InputAdd:
		name, category := splitNameAndCategory(m.addInput.Value())
		habit, err := m.State.AddHabit(ctx, name, category, "")
		if err == nil || isSaveWarning(err) {
			m.Cursor = 0
			m.scheduleHabitReminder(habit)
		}
		m.applyResult(err, fmt.Sprintf("added %s #%s", habit.Name, habit.Category))
	case InputRemind:
		if habit, ok := m.selectedHabit(); ok {
			at := strings.TrimSpace(m.remindInput.Value())
			updated, err := m.State.SetReminder(ctx, habit.ID, at)
			if err == nil || isSaveWarning(err) {
				if m.Reminders != nil {
					m.Reminders.Cancel(habit.ID)
				}
				m.scheduleHabitReminder(updated)
			}
			if at == "" {
				m.applyResult(err, fmt.Sprintf("reminder cleared for %s", habit.Name))
			} else {
				m.applyResult(err, fmt.Sprintf("reminder set for %s at %s", habit.Name, at))
			}
		}
	case InputNote:
		note, err := m.State.AddNote(ctx, m.noteArea.Value())
		if err == nil || isSaveWarning(err) {
			m.noteArea.SetValue("")
			m.NoteCursor = len(m.State.Notes()) - 1
		}
		m.applyResult(err, fmt.Sprintf("note saved (%s)", note.Date.Format("2006-01-02")))
	}

	if m.Status.IsError {
		// Keep the capture open so the input can be corrected.
		return m
	}
	m.Input = InputNone
	m.addInput.Blur()
	m.remindInput.Blur()
	m.noteArea.Blur()
	return m
}

// splitNameAndCategory peels a trailing #category tag off the habit name.
func splitNameAndCategory(raw string) (string, model.Category) {
	fields := strings.Fields(strings.TrimSpace(raw))
	category := model.CategoryPersonal
	if len(fields) > 0 {
		if last := fields[len(fields)-1]; strings.HasPrefix(last, "#") {
			if parsed, err := model.ParseCategory(strings.TrimPrefix(last, "#")); err == nil {
				category = parsed
				fields = fields[:len(fields)-1]
			}
		}
	}
	return strings.Join(fields, " "), category
}

func (m Model) selectedHabit() (model.Habit, bool) {
	habits := m.State.Habits()
	if len(habits) == 0 {
		return model.Habit{}, false
	}
	idx := clampCursor(m.Cursor, len(habits))
	return habits[idx], true
}

// applyResult routes an operation outcome to the status bar. A snapshot
// write failure is surfaced as a warning, not an error, since the
// in-memory change stands.
func (m *Model) applyResult(err error, okMessage string) {
	switch {
	case err == nil:
		m.Status = StatusBar{Text: okMessage, IsError: false}
	case isSaveWarning(err):
		m.Status = StatusBar{Text: okMessage + " (save failed, retrying on next change)", IsError: false}
		m.notify("Save Warning", err.Error(), "warn")
	default:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Error", err.Error(), "error")
	}
}

func toggleMessage(name string, completed bool) string {
	if completed {
		return fmt.Sprintf("%s completed, streak up", name)
	}
	return fmt.Sprintf("%s unmarked", name)
}

func (m Model) renderHabitsView() string {
	habits := m.State.Habits()
	items := make([]views.HabitItemData, 0, len(habits))
	for _, h := range habits {
		items = append(items, views.HabitItemData{
			ID:         h.ID,
			Name:       h.Name,
			Category:   string(h.Category),
			RemindTime: h.RemindTime,
			Progress:   h.Progress,
			Completed:  h.Completed,
		})
	}
	addView := ""
	if m.Input == InputAdd {
		addView = m.addInput.View()
	}
	if m.Input == InputRemind {
		addView = m.remindInput.View()
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{
		ListView:   m.habitsList.View(),
		AddView:    addView,
		Capturing:  m.Input == InputAdd || m.Input == InputRemind,
		Items:      items,
		SelectedID: m.SelectedHabitID,
	})
}
