package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Reminders != nil {
		return waitForReminderCmd(m.Reminders.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			next.syncBubbleData()
			return next, nil
		}
		if m.Input != InputNone {
			next := m.handleCaptureKey(typed)
			next.syncBubbleData()
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewHabits:
			next := m.handleHabitsKey(typed)
			next.syncBubbleData()
			return next, nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewNotes:
			next := m.handleNotesKey(typed)
			next.syncBubbleData()
			return next, nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case ReminderDueMsg:
		next := m.onReminderDue(typed.Event)
		if next.Reminders != nil {
			return next, waitForReminderCmd(next.Reminders.C())
		}
		return next, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewHabits:
		leftPane = m.renderHabitsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewStats:
		leftPane = m.renderStatsView()
		rightPane = m.renderHelpIfVisible()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderHelpIfVisible()
	case ViewNotes:
		leftPane = m.renderNotesView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.Name, last.At.Format("15:04:05"))
	}
	if n := m.renderNotificationsView(); n != "" {
		notificationView += n
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("habitd | view: %s | selected: %s", m.CurrentView, m.SelectedHabitID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s habits | %s stats | %s cal | %s notes | / cmd | %s help | %s quit", m.Keys.Habits, m.Keys.Stats, m.Keys.Calendar, m.Keys.Notes, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := []string{
		"j/k move cursor",
		"t toggle habit done",
		"p mark progress",
		"r set reminder",
		"d delete habit",
		"a add habit",
		"R reset all habits",
		"n new note (Notes view)",
		"h/l change month (Calendar view)",
	}
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindings,
		HelpView:    m.helpModel.View(globalKeyMapBindings{}),
	})
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	n := Notification{Title: title, Body: body, Level: level, At: nowUTC()}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewHabits, ViewStats, ViewCalendar, ViewNotes:
		return true
	default:
		return false
	}
}
