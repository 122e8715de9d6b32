package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitd/internal/model"
	"github.com/habitforge/habitd/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.CalendarMonth = m.CalendarMonth.AddDate(0, -1, 0)
	case "l", "right":
		m.CalendarMonth = m.CalendarMonth.AddDate(0, 1, 0)
	case "g":
		m.CalendarMonth = startOfMonth(nowUTC())
	}
	return m
}

func (m Model) renderCalendarView() string {
	return views.RenderCalendarPanel(views.CalendarPanelData{
		MonthTitle: m.CalendarMonth.Format("January 2006"),
		Weeks:      buildCalendarWeeks(m.CalendarMonth, m.State.CompletionsByDate(), model.DateKey(nowUTC())),
	})
}

// buildCalendarWeeks lays the month out in Sunday-first rows, marking
// each day with its completion count.
func buildCalendarWeeks(month time.Time, completions map[string]int, today string) [][]views.CalendarDayData {
	first := startOfMonth(month)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	weeks := make([][]views.CalendarDayData, 0, 6)
	week := make([]views.CalendarDayData, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, views.CalendarDayData{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		key := fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), day)
		week = append(week, views.CalendarDayData{
			Day:         day,
			Completions: completions[key],
			IsToday:     key == today,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]views.CalendarDayData, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, views.CalendarDayData{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
