package tui

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/rogueday/internal/timer"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

// TasksView renders the run's task list with selection and the live
// countdown on the active timed task.
type TasksView struct {
	width  int
	height int
}

// NewTasksView creates a new TasksView.
func NewTasksView() *TasksView {
	return &TasksView{width: 80, height: 20}
}

// SetSize sets the rendering area.
func (v *TasksView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the task list. selected is the index into tasks; countdown
// is the snapshot for the active timed task, if any.
func (v *TasksView) View(tasks []models.Task, selected int, countdown *timer.Snapshot) string {
	if len(tasks) == 0 {
		return dimStyle.Render("  No tasks yet: press a to add one")
	}

	var b strings.Builder
	for i, task := range tasks {
		line := fmt.Sprintf("%s %s %s", statusGlyph(task.Status), tierBadge(task.Tier), task.Title)

		meta := fmt.Sprintf(" %dm", task.Duration)
		if task.Status == models.TaskStatusCompleted {
			meta += fmt.Sprintf("  +%d xp", task.XPEarned)
		} else if task.Status == models.TaskStatusPending && task.EnergyCost > 0 {
			meta += fmt.Sprintf("  -%d energy", task.EnergyCost)
		}
		line += dimStyle.Render(meta)

		if task.Status == models.TaskStatusActive && task.UseTimer && countdown != nil {
			if countdown.Remaining == 0 {
				line += "  " + timerDoneStyle.Render("00:00 time!")
			} else {
				line += "  " + timerStyle.Render(countdown.Formatted)
			}
		}

		if i == selected {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
