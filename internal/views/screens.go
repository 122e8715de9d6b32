package views

import (
	"fmt"
	"strings"
)

type HabitItemData struct {
	ID         string
	Name       string
	Category   string
	RemindTime string
	Progress   int
	Completed  bool
	Streak     int
}

type HabitsPanelData struct {
	ListView   string
	AddView    string
	Capturing  bool
	Items      []HabitItemData
	SelectedID string
}

type ChartBarData struct {
	Name        string
	Completions int
}

type StatsPanelData struct {
	Streak         int
	Badge          string
	CompletionRate int
	CompletedToday []string
	Chart          []ChartBarData
}

type CalendarDayData struct {
	Day         int
	Completions int
	IsToday     bool
}

type CalendarPanelData struct {
	MonthTitle string
	Weeks      [][]CalendarDayData
}

type NoteItemData struct {
	Date string
	Text string
}

type NotesPanelData struct {
	EditorView string
	Capturing  bool
	Items      []NoteItemData
	Cursor     int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	if data.Capturing {
		b.WriteString(data.AddView + "\n")
	}
	b.WriteString("actions: [j/k]move [t]toggle [p]progress [r]remind [d]delete [a]add [R]reset\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no habits yet, press [a] to add one)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s %d%% #%s", cursor, mark, progressBar(item.Progress, 10), item.Name, item.Progress, strings.ToLower(item.Category)))
		if item.RemindTime != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.RemindTime))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	b.WriteString(fmt.Sprintf("badge: %s\n", data.Badge))
	b.WriteString(fmt.Sprintf("today: %d%% complete\n", data.CompletionRate))
	if len(data.CompletedToday) > 0 {
		b.WriteString("completed today:\n")
		for _, name := range data.CompletedToday {
			b.WriteString("- " + name + "\n")
		}
	}
	if len(data.Chart) > 0 {
		b.WriteString("\ncompletions per habit:\n")
		max := 0
		for _, bar := range data.Chart {
			if bar.Completions > max {
				max = bar.Completions
			}
		}
		for _, bar := range data.Chart {
			width := 0
			if max > 0 {
				width = bar.Completions * 20 / max
			}
			b.WriteString(fmt.Sprintf("%-20s %s %d\n", truncate(bar.Name, 20), strings.Repeat("#", width), bar.Completions))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("month: %s\n", data.MonthTitle))
	b.WriteString("actions: [h/l]month [j/k]none\n")
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for _, week := range data.Weeks {
		for _, day := range week {
			if day.Day == 0 {
				b.WriteString("    ")
				continue
			}
			marker := " "
			if day.Completions > 0 {
				marker = "*"
			}
			if day.IsToday {
				marker = "@"
			}
			b.WriteString(fmt.Sprintf("%2d%s ", day.Day, marker))
		}
		b.WriteString("\n")
	}
	b.WriteString("legend: * completed habit(s), @ today")
	return strings.TrimSpace(b.String())
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	b.WriteString("actions: [n]new [d]delete [j/k]move\n")
	if data.Capturing {
		b.WriteString(data.EditorView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no notes yet, press [n] to write one)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, item.Date, item.Text))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
