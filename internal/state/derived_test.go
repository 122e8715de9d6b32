package state

import (
	"context"
	"testing"
	"time"

	"github.com/habitforge/habitd/internal/model"
)

func TestDerivedEmptyState(t *testing.T) {
	m := newTestModel(t, nil)
	d := m.Derived()
	if d.CompletionRate != 0 {
		t.Fatalf("expected 0%% completion with no habits, got %d", d.CompletionRate)
	}
	if d.Badge != model.BadgeNewbie {
		t.Fatalf("expected Newbie badge at streak 0, got %q", d.Badge)
	}
	if len(d.CompletedToday) != 0 || len(d.Chart) != 0 {
		t.Fatalf("expected empty derived slices, got %#v", d)
	}
}

func TestDerivedCompletionRateRounds(t *testing.T) {
	m := newTestModel(t, nil)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, name := range []string{"A", "B", "C"} {
		h, err := m.AddHabit(ctx, name, model.CategoryHealth, "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, h.ID)
	}
	if _, err := m.ToggleHabit(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}

	d := m.Derived()
	// 1 of 3 rounds to 33.
	if d.CompletionRate != 33 {
		t.Fatalf("expected completion rate 33, got %d", d.CompletionRate)
	}
	if len(d.CompletedToday) != 1 || d.CompletedToday[0].ID != ids[0] {
		t.Fatalf("unexpected completedToday: %#v", d.CompletedToday)
	}

	if _, err := m.ToggleHabit(ctx, ids[1]); err != nil {
		t.Fatal(err)
	}
	// 2 of 3 rounds to 67.
	if d := m.Derived(); d.CompletionRate != 67 {
		t.Fatalf("expected completion rate 67, got %d", d.CompletionRate)
	}
}

func TestDerivedBadgeTracksStreak(t *testing.T) {
	m := newTestModel(t, nil)
	m.streak = 7
	if d := m.Derived(); d.Badge != model.BadgeStreakMaster {
		t.Fatalf("expected Streak Master at streak 7, got %q", d.Badge)
	}
	m.streak = 30
	if d := m.Derived(); d.Badge != model.BadgeLegend {
		t.Fatalf("expected Legend at streak 30, got %q", d.Badge)
	}
}

func TestDerivedChartAndCalendarCounts(t *testing.T) {
	m := newTestModel(t, nil)
	ctx := context.Background()

	run, _ := m.AddHabit(ctx, "Run", model.CategoryFitness, "")
	read, _ := m.AddHabit(ctx, "Read", model.CategoryStudy, "")

	// Run completed on two consecutive days, Read only on the second.
	if _, err := m.ToggleHabit(ctx, run.ID); err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return testClock.AddDate(0, 0, 1) }
	// Run is still flagged completed from day one, so the first toggle on
	// day two un-completes it and the second records the day-two date.
	if _, err := m.ToggleHabit(ctx, run.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.ToggleHabit(ctx, run.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.ToggleHabit(ctx, read.ID); err != nil {
		t.Fatal(err)
	}

	d := m.Derived()
	if len(d.Chart) != 2 {
		t.Fatalf("expected 2 chart points, got %d", len(d.Chart))
	}
	// Habits are newest first, so Read leads the chart.
	if d.Chart[0].Name != "Read" || d.Chart[0].Completions != 1 {
		t.Fatalf("unexpected chart point for Read: %#v", d.Chart[0])
	}
	if d.Chart[1].Name != "Run" || d.Chart[1].Completions != 2 {
		t.Fatalf("unexpected chart point for Run: %#v", d.Chart[1])
	}

	dayTwo := model.DateKey(testClock.AddDate(0, 0, 1))
	byDate := m.CompletionsByDate()
	if byDate[testToday] != 1 {
		t.Fatalf("expected 1 completion on day one, got %d", byDate[testToday])
	}
	if byDate[dayTwo] != 2 {
		t.Fatalf("expected 2 completions on day two, got %d", byDate[dayTwo])
	}
}
