package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/habitforge/habitd/internal/remind"
	"github.com/habitforge/habitd/internal/state"
)

type View string

const (
	ViewHabits   View = "Habits"
	ViewStats    View = "Stats"
	ViewCalendar View = "Calendar"
	ViewNotes    View = "Notes"
)

// InputMode tracks which capture field currently owns the keyboard.
type InputMode string

const (
	InputNone   InputMode = ""
	InputAdd    InputMode = "add"
	InputRemind InputMode = "remind"
	InputNote   InputMode = "note"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Habits   string
	Stats    string
	Calendar string
	Notes    string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type Model struct {
	CurrentView     View
	SelectedHabitID string
	Cursor          int
	NoteCursor      int
	Input           InputMode
	Palette         CommandPaletteState
	HelpVisible     bool
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error
	Notifications   []Notification
	DesktopEnabled  bool
	notifier        DesktopNotifier
	State           *state.Model
	Reminders       *remind.Engine
	ReminderLog     []remind.Event
	CalendarMonth   time.Time
	progressStep    int
	// Bubble components used for rich TUI controls
	habitsList   list.Model
	addInput     textinput.Model
	remindInput  textinput.Model
	commandInput textinput.Model
	noteArea     textarea.Model
	helpModel    help.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event remind.Event
}

func NewModel(st *state.Model) Model {
	m := Model{
		CurrentView:   ViewHabits,
		State:         st,
		CalendarMonth: startOfMonth(time.Now().UTC()),
		notifier:      NoopDesktopNotifier{},
		progressStep:  state.DefaultProgressStep,
		Keys: GlobalKeyMap{
			Habits:   "1",
			Stats:    "2",
			Calendar: "3",
			Notes:    "4",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(st *state.Model, engine *remind.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(st)
	m.Reminders = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.ProgressStep > 0 {
		m.progressStep = cfg.ProgressStep
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.habitsList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.habitsList.Title = "Habits (list)"
	m.habitsList.SetShowHelp(false)
	m.habitsList.SetFilteringEnabled(false)

	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "habit name [#category]"
	m.addInput.CharLimit = 128
	m.addInput.Width = 42

	m.remindInput = textinput.New()
	m.remindInput.Prompt = "remind@ "
	m.remindInput.Placeholder = "HH:MM"
	m.remindInput.CharLimit = 5
	m.remindInput.Width = 10

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.noteArea = textarea.New()
	m.noteArea.SetWidth(54)
	m.noteArea.SetHeight(4)
	m.noteArea.ShowLineNumbers = false
	m.noteArea.Placeholder = "How did it go today?"

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	habits := m.State.Habits()
	m.Cursor = clampCursor(m.Cursor, len(habits))
	if len(habits) == 0 {
		m.SelectedHabitID = ""
	} else {
		m.SelectedHabitID = habits[m.Cursor].ID
	}

	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		desc := fmt.Sprintf("%d%% #%s", h.Progress, h.Category)
		if h.RemindTime != "" {
			desc += " @" + h.RemindTime
		}
		items = append(items, listItem{title: h.Name, description: desc})
	}
	m.habitsList.SetItems(items)
	if len(items) > 0 {
		m.habitsList.Select(m.Cursor)
	}

	m.NoteCursor = clampCursor(m.NoteCursor, len(m.State.Notes()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
