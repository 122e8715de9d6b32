package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/model"
	"github.com/habitforge/habitd/internal/remind"
)

// ScheduleAllReminders queues the next occurrence of every habit's daily
// reminder. Called once at startup after the snapshot is loaded.
func (m *Model) ScheduleAllReminders() {
	if m.Reminders == nil {
		return
	}
	for _, habit := range m.State.Habits() {
		m.scheduleHabitReminder(habit)
	}
}

func (m *Model) scheduleHabitReminder(habit model.Habit) {
	if m.Reminders == nil || habit.RemindTime == "" {
		return
	}
	next, err := remind.NextTrigger(nowUTC(), habit.RemindTime)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reminder schedule failed: %v", err), IsError: true}
		return
	}
	if err := m.Reminders.Schedule(remind.Event{HabitID: habit.ID, Name: habit.Name, At: next}); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reminder schedule failed: %v", err), IsError: true}
	}
}

func (m Model) onReminderDue(ev remind.Event) Model {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > 20 {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
	}

	m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", ev.Name), IsError: false}
	m.notify("Habit Reminder", fmt.Sprintf("time for %s", ev.Name), "info")

	// Daily reminders repeat: queue tomorrow's occurrence as long as the
	// habit still exists with a reminder configured.
	if habit, ok := m.State.Habit(ev.HabitID); ok && habit.RemindTime != "" {
		m.scheduleHabitReminder(habit)
	}
	return m
}

func waitForReminderCmd(ch <-chan remind.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
