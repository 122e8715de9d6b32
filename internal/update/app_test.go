package update

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/model"
	"github.com/habitforge/habitd/internal/remind"
	"github.com/habitforge/habitd/internal/shared"
	"github.com/habitforge/habitd/internal/state"
	"github.com/habitforge/habitd/internal/storage"
)

func newTestApp(t *testing.T) Model {
	t.Helper()
	st := state.New(storage.NewMemoryStore(), shared.NewLogger(io.Discard))
	return NewModel(st)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestApp(t)
	if m.CurrentView != ViewHabits {
		t.Fatalf("expected default view %q, got %q", ViewHabits, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.progressStep != state.DefaultProgressStep {
		t.Fatalf("expected default progress step, got %d", m.progressStep)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(keyRunes("2"))
	next := updated.(Model)
	if next.CurrentView != ViewStats {
		t.Fatalf("expected stats view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyRunes("4"))
	next = updated.(Model)
	if next.CurrentView != ViewNotes {
		t.Fatalf("expected notes view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewCalendar})
	next := updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestApp(t)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestAddHabitCaptureFlow(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if next.Input != InputAdd {
		t.Fatalf("expected add capture mode, got %q", next.Input)
	}

	updated, _ = next.Update(keyRunes("Drink Water #health"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Input != InputNone {
		t.Fatalf("expected capture closed, got %q", next.Input)
	}
	habits := next.State.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Name != "Drink Water" || habits[0].Category != model.CategoryHealth {
		t.Fatalf("unexpected habit: %#v", habits[0])
	}
	if next.SelectedHabitID != habits[0].ID {
		t.Fatalf("expected new habit selected, got %q", next.SelectedHabitID)
	}
}

func TestToggleAndProgressKeys(t *testing.T) {
	m := newTestApp(t)
	habit, err := m.State.AddHabit(context.Background(), "Read", model.CategoryStudy, "")
	if err != nil {
		t.Fatal(err)
	}
	m.syncBubbleData()

	updated, _ := m.Update(keyRunes("t"))
	next := updated.(Model)
	got, _ := next.State.Habit(habit.ID)
	if !got.Completed || next.State.Streak() != 1 {
		t.Fatalf("expected completed habit and streak 1, got %#v streak %d", got, next.State.Streak())
	}

	updated, _ = next.Update(keyRunes("t"))
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("p"))
	next = updated.(Model)
	got, _ = next.State.Habit(habit.ID)
	if got.Progress != state.DefaultProgressStep {
		t.Fatalf("expected progress %d, got %d", state.DefaultProgressStep, got.Progress)
	}
}

func TestDeleteKeyRemovesSelected(t *testing.T) {
	m := newTestApp(t)
	if _, err := m.State.AddHabit(context.Background(), "Run", model.CategoryFitness, ""); err != nil {
		t.Fatal(err)
	}
	m.syncBubbleData()

	updated, _ := m.Update(keyRunes("d"))
	next := updated.(Model)
	if len(next.State.Habits()) != 0 {
		t.Fatal("expected habit deleted")
	}
	if next.SelectedHabitID != "" {
		t.Fatalf("expected empty selection, got %q", next.SelectedHabitID)
	}
}

func TestPaletteCommandAdds(t *testing.T) {
	m := newTestApp(t)

	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = next.Update(keyRunes("add Meditate #personal"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	habits := next.State.Habits()
	if len(habits) != 1 || habits[0].Name != "Meditate" {
		t.Fatalf("unexpected habits: %#v", habits)
	}
	if !strings.Contains(next.Status.Text, "Meditate") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestPaletteUnknownCommandSetsError(t *testing.T) {
	m := newTestApp(t)
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("teleport home"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestReminderDueLogsAndReschedules(t *testing.T) {
	st := state.New(storage.NewMemoryStore(), shared.NewLogger(io.Discard))
	habit, err := st.AddHabit(context.Background(), "Stretch", model.CategoryFitness, "09:00")
	if err != nil {
		t.Fatal(err)
	}

	engine := remind.NewEngine(4)
	m := NewModelWithConfig(st, engine, NoopDesktopNotifier{}, DefaultRuntimeConfig())

	updated, _ := m.Update(ReminderDueMsg{Event: remind.Event{HabitID: habit.ID, Name: habit.Name, At: time.Now()}})
	next := updated.(Model)
	if len(next.ReminderLog) != 1 {
		t.Fatalf("expected 1 logged reminder, got %d", len(next.ReminderLog))
	}
	if !strings.Contains(next.Status.Text, "Stretch") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestCalendarMonthPaging(t *testing.T) {
	m := newTestApp(t)
	m.CurrentView = ViewCalendar
	start := m.CalendarMonth

	updated, _ := m.Update(keyRunes("l"))
	next := updated.(Model)
	if !next.CalendarMonth.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("expected next month, got %v", next.CalendarMonth)
	}

	updated, _ = next.Update(keyRunes("h"))
	next = updated.(Model)
	updated, _ = next.Update(keyRunes("h"))
	next = updated.(Model)
	if !next.CalendarMonth.Equal(start.AddDate(0, -1, 0)) {
		t.Fatalf("expected previous month, got %v", next.CalendarMonth)
	}
}

func TestBuildCalendarWeeks(t *testing.T) {
	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	weeks := buildCalendarWeeks(month, map[string]int{"2026-08-30": 2}, "2026-08-30")

	if len(weeks) == 0 {
		t.Fatal("expected at least one week")
	}
	for _, week := range weeks {
		if len(week) != 7 {
			t.Fatalf("expected 7 cells per week, got %d", len(week))
		}
	}
	// August 1st 2026 is a Saturday, so the first row has six blanks.
	if weeks[0][6].Day != 1 {
		t.Fatalf("expected day 1 in the Saturday column, got %#v", weeks[0])
	}
	found := false
	for _, week := range weeks {
		for _, cell := range week {
			if cell.Day == 30 {
				found = true
				if cell.Completions != 2 || !cell.IsToday {
					t.Fatalf("unexpected cell for day 30: %#v", cell)
				}
			}
		}
	}
	if !found {
		t.Fatal("day 30 missing from grid")
	}
}

func TestSplitNameAndCategory(t *testing.T) {
	name, category := splitNameAndCategory("Morning run #fitness")
	if name != "Morning run" || category != model.CategoryFitness {
		t.Fatalf("unexpected split: %q %q", name, category)
	}

	name, category = splitNameAndCategory("Just a habit")
	if name != "Just a habit" || category != model.CategoryPersonal {
		t.Fatalf("unexpected default split: %q %q", name, category)
	}

	// Unknown tags stay part of the name.
	name, category = splitNameAndCategory("Read #novels")
	if name != "Read #novels" || category != model.CategoryPersonal {
		t.Fatalf("unexpected unknown-tag split: %q %q", name, category)
	}
}

func TestRuntimeConfigFrom(t *testing.T) {
	cfg := shared.DefaultConfig()
	cfg.Notifications.Desktop = true
	cfg.Habits.ProgressStep = 25

	rc := RuntimeConfigFrom(cfg)
	if !rc.DesktopNotifications || rc.ProgressStep != 25 {
		t.Fatalf("unexpected runtime config: %#v", rc)
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := newTestApp(t)
	if _, err := m.State.AddHabit(context.Background(), "Drink Water", model.CategoryHealth, "08:00"); err != nil {
		t.Fatal(err)
	}
	m.syncBubbleData()

	for _, view := range []View{ViewHabits, ViewStats, ViewCalendar, ViewNotes} {
		m.CurrentView = view
		out := m.View()
		if !strings.Contains(out, "habitd") {
			t.Fatalf("view %s missing header: %q", view, out)
		}
	}
}
