package state

import (
	"math"

	"github.com/habitforge/habitd/internal/model"
)

// ChartPoint is one habit's total completion count, used by the stats chart.
type ChartPoint struct {
	Name        string
	Completions int
}

// Derived holds the display values computed from a state snapshot.
type Derived struct {
	CompletedToday []model.Habit
	CompletionRate int
	Badge          model.Badge
	Chart          []ChartPoint
}

// Derived recomputes all display values from the current state. It is a
// pure query: nothing is cached and nothing is mutated.
func (m *Model) Derived() Derived {
	today := model.DateKey(m.now())

	out := Derived{
		Badge: model.BadgeForStreak(m.streak),
		Chart: make([]ChartPoint, 0, len(m.habits)),
	}
	for _, habit := range m.habits {
		if habit.CompletedOn(today) {
			out.CompletedToday = append(out.CompletedToday, habit)
		}
		out.Chart = append(out.Chart, ChartPoint{Name: habit.Name, Completions: len(habit.CompletedDates)})
	}
	if len(m.habits) > 0 {
		out.CompletionRate = int(math.Round(100 * float64(len(out.CompletedToday)) / float64(len(m.habits))))
	}
	return out
}

// CompletionsByDate counts completed habits per calendar date across the
// whole collection, feeding the calendar view's markers.
func (m *Model) CompletionsByDate() map[string]int {
	out := make(map[string]int)
	for _, habit := range m.habits {
		for _, date := range habit.CompletedDates {
			out[date]++
		}
	}
	return out
}
