// Package state owns the authoritative in-memory habit, streak and notes
// state. Every mutation applies atomically in memory, then writes a snapshot
// to the injected store; a failed write never rolls the mutation back.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/habitforge/habitd/internal/model"
	"github.com/habitforge/habitd/internal/shared"
	"github.com/habitforge/habitd/internal/storage"
)

var (
	ErrValidation = errors.New("state: validation failed")
	ErrNotFound   = errors.New("state: habit not found")
	ErrSaveFailed = errors.New("state: snapshot not persisted")
)

// DefaultProgressStep is the percentage added per progress mark.
const DefaultProgressStep = 20

type Model struct {
	store  storage.Store
	logger *log.Logger
	now    func() time.Time
	newID  func() string

	habits []model.Habit
	streak int
	notes  []model.Note
}

func New(store storage.Store, logger *log.Logger) *Model {
	return &Model{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  shared.GenerateID,
	}
}

// Load reads the persisted snapshot. Missing keys default to empty
// collections; malformed JSON is discarded with a warning, never fatal.
func (m *Model) Load(ctx context.Context) {
	m.habits = nil
	m.streak = 0
	m.notes = nil

	if raw, ok := m.read(ctx, storage.KeyHabits); ok {
		var habits []model.Habit
		if err := json.Unmarshal(raw, &habits); err != nil {
			m.logger.Warn("discarding corrupt habits snapshot", "err", err)
		} else {
			m.habits = habits
		}
	}
	if raw, ok := m.read(ctx, storage.KeyStreak); ok {
		var streak int
		if err := json.Unmarshal(raw, &streak); err != nil {
			m.logger.Warn("discarding corrupt streak snapshot", "err", err)
		} else if streak < 0 {
			m.logger.Warn("discarding negative streak snapshot", "streak", streak)
		} else {
			m.streak = streak
		}
	}
	if raw, ok := m.read(ctx, storage.KeyNotes); ok {
		var notes []model.Note
		if err := json.Unmarshal(raw, &notes); err != nil {
			m.logger.Warn("discarding corrupt notes snapshot", "err", err)
		} else {
			m.notes = notes
		}
	}
}

// AddHabit creates a habit with a fresh id and prepends it (newest first).
func (m *Model) AddHabit(ctx context.Context, name string, category model.Category, remindTime string) (model.Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Habit{}, fmt.Errorf("%w: habit name is empty", ErrValidation)
	}
	if !category.IsValid() {
		return model.Habit{}, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	if !model.ValidReminderTime(remindTime) {
		return model.Habit{}, fmt.Errorf("%w: reminder time %q is not HH:MM", ErrValidation, remindTime)
	}

	habit := model.Habit{
		ID:             m.newID(),
		Name:           trimmed,
		Category:       category,
		RemindTime:     remindTime,
		Progress:       0,
		Completed:      false,
		CompletedDates: []string{},
	}
	m.habits = append([]model.Habit{habit}, m.habits...)
	return habit, m.persist(ctx, storage.KeyHabits)
}

// ToggleHabit flips completion. Completing sets progress to 100, records
// today and bumps the streak; un-completing reverses all three (streak
// floored at zero).
func (m *Model) ToggleHabit(ctx context.Context, id string) (model.Habit, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		return model.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	today := model.DateKey(m.now())
	habit := &m.habits[idx]
	if habit.Completed {
		habit.Completed = false
		habit.Progress = 0
		habit.CompletedDates = removeDate(habit.CompletedDates, today)
		if m.streak > 0 {
			m.streak--
		}
	} else {
		habit.Completed = true
		habit.Progress = 100
		habit.CompletedDates = addDate(habit.CompletedDates, today)
		m.streak++
	}
	return *habit, m.persist(ctx, storage.KeyHabits, storage.KeyStreak)
}

// AddProgress advances progress by step (capped at 100). Reaching 100 on a
// not-yet-completed habit completes it, records today and bumps the streak.
// Progress never moves down, so this can never decrement the streak.
func (m *Model) AddProgress(ctx context.Context, id string, step int) (model.Habit, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		return model.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if step <= 0 {
		step = DefaultProgressStep
	}

	habit := &m.habits[idx]
	next := habit.Progress + step
	if next > 100 {
		next = 100
	}
	habit.Progress = next
	if next == 100 && !habit.Completed {
		habit.Completed = true
		habit.CompletedDates = addDate(habit.CompletedDates, model.DateKey(m.now()))
		m.streak++
		return *habit, m.persist(ctx, storage.KeyHabits, storage.KeyStreak)
	}
	return *habit, m.persist(ctx, storage.KeyHabits)
}

// SetReminder sets or clears (empty time) the habit's daily reminder.
func (m *Model) SetReminder(ctx context.Context, id, remindTime string) (model.Habit, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		return model.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !model.ValidReminderTime(remindTime) {
		return model.Habit{}, fmt.Errorf("%w: reminder time %q is not HH:MM", ErrValidation, remindTime)
	}
	m.habits[idx].RemindTime = remindTime
	return m.habits[idx], m.persist(ctx, storage.KeyHabits)
}

// DeleteHabit removes the habit; absent ids are a no-op, not an error.
// The streak is deliberately left untouched, matching the toggle-only
// decrement rule.
func (m *Model) DeleteHabit(ctx context.Context, id string) error {
	idx := m.indexOf(id)
	if idx < 0 {
		return nil
	}
	m.habits = append(m.habits[:idx], m.habits[idx+1:]...)
	return m.persist(ctx, storage.KeyHabits)
}

// ResetAllHabits zeroes progress, completion and the streak. Completion
// date history is kept.
func (m *Model) ResetAllHabits(ctx context.Context) error {
	for i := range m.habits {
		m.habits[i].Progress = 0
		m.habits[i].Completed = false
	}
	m.streak = 0
	return m.persist(ctx, storage.KeyHabits, storage.KeyStreak)
}

// AddNote appends a timestamped note.
func (m *Model) AddNote(ctx context.Context, text string) (model.Note, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Note{}, fmt.Errorf("%w: note text is empty", ErrValidation)
	}
	note := model.Note{Date: m.now().UTC(), Text: trimmed}
	m.notes = append(m.notes, note)
	return note, m.persist(ctx, storage.KeyNotes)
}

// DeleteNote removes the note at index; out-of-range indexes are a no-op.
func (m *Model) DeleteNote(ctx context.Context, index int) error {
	if index < 0 || index >= len(m.notes) {
		return nil
	}
	m.notes = append(m.notes[:index], m.notes[index+1:]...)
	return m.persist(ctx, storage.KeyNotes)
}

// Habits returns the habit collection, newest first.
func (m *Model) Habits() []model.Habit {
	out := make([]model.Habit, len(m.habits))
	copy(out, m.habits)
	return out
}

// Habit looks up a habit by id.
func (m *Model) Habit(id string) (model.Habit, bool) {
	idx := m.indexOf(id)
	if idx < 0 {
		return model.Habit{}, false
	}
	return m.habits[idx], true
}

func (m *Model) Streak() int {
	return m.streak
}

// Notes returns the notes log in append order.
func (m *Model) Notes() []model.Note {
	out := make([]model.Note, len(m.notes))
	copy(out, m.notes)
	return out
}

func (m *Model) indexOf(id string) int {
	for i := range m.habits {
		if m.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNoKey) {
			m.logger.Warn("snapshot unreadable", "key", key, "err", err)
		}
		return nil, false
	}
	return raw, true
}

func (m *Model) persist(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		var payload any
		switch key {
		case storage.KeyHabits:
			payload = m.habits
			if m.habits == nil {
				payload = []model.Habit{}
			}
		case storage.KeyStreak:
			payload = m.streak
		case storage.KeyNotes:
			payload = m.notes
			if m.notes == nil {
				payload = []model.Note{}
			}
		default:
			return fmt.Errorf("state: unknown snapshot key %q", key)
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: marshal %s: %v", ErrSaveFailed, key, err)
		}
		if err := m.store.Set(ctx, key, raw); err != nil {
			m.logger.Warn("snapshot write failed, in-memory state kept", "key", key, "err", err)
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, key, err)
		}
	}
	return nil
}

func addDate(dates []string, date string) []string {
	for _, d := range dates {
		if d == date {
			return dates
		}
	}
	return append(dates, date)
}

func removeDate(dates []string, date string) []string {
	out := dates[:0]
	for _, d := range dates {
		if d != date {
			out = append(out, d)
		}
	}
	return out
}
