package tui

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

func TestHeaderHintWithoutRun(t *testing.T) {
	view := NewHeader().View(nil, nil)
	if !strings.Contains(view, "no active run: press n to start one") {
		t.Errorf("header without a run should hint at starting one, got %q", view)
	}
}

func TestHeaderShowsStreak(t *testing.T) {
	run := &models.Run{RunDate: "2025-03-10", DailyXP: 120, TotalFocusMinutes: 45}
	stats := &models.UserStats{CurrentStreak: 6}

	view := NewHeader().View(run, stats)
	for _, want := range []string{"2025-03-10", "120", "45m", "Streak", "6"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q in %q", want, view)
		}
	}
}

func TestTasksViewEmptyHint(t *testing.T) {
	view := NewTasksView().View(nil, 0, nil)
	if !strings.Contains(view, "No tasks yet: press a to add one") {
		t.Errorf("empty task list should hint at adding one, got %q", view)
	}
}
