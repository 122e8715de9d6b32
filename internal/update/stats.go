package update

import "github.com/habitforge/habitd/internal/views"

func (m Model) renderStatsView() string {
	derived := m.State.Derived()

	completed := make([]string, 0, len(derived.CompletedToday))
	for _, h := range derived.CompletedToday {
		completed = append(completed, h.Name)
	}
	chart := make([]views.ChartBarData, 0, len(derived.Chart))
	for _, point := range derived.Chart {
		chart = append(chart, views.ChartBarData{Name: point.Name, Completions: point.Completions})
	}

	return views.RenderStatsPanel(views.StatsPanelData{
		Streak:         m.State.Streak(),
		Badge:          string(derived.Badge),
		CompletionRate: derived.CompletionRate,
		CompletedToday: completed,
		Chart:          chart,
	})
}
