package tui

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// JournalView renders the extraction history list.
type JournalView struct {
	width int
}

// NewJournalView creates a new JournalView.
func NewJournalView() *JournalView {
	return &JournalView{width: 80}
}

// SetWidth sets the view width.
func (v *JournalView) SetWidth(width int) {
	v.width = width
}

// View renders the journal entries, newest first.
func (v *JournalView) View(entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("  No extractions yet")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Journal"))
	b.WriteString("\n\n")
	for _, entry := range entries {
		e := entry.Extraction
		line := fmt.Sprintf("  %s  %s xp",
			labelStyle.Render(entry.RunDate),
			valueStyle.Render(fmt.Sprintf("%d", e.FinalXP)))
		if e.PenaltyXP > 0 {
			line += errorStyle.Render(fmt.Sprintf(" (-%d)", e.PenaltyXP))
		}
		line += dimStyle.Render(fmt.Sprintf("  %d✓ %d✗  %dm focus",
			e.TasksCompleted, e.TasksFailed, e.TotalFocusMinutes))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ExtractionSummary renders the post-extraction celebration block.
func ExtractionSummary(e *models.Extraction) string {
	var b strings.Builder
	b.WriteString(successStyle.Render("  ✓ Run extracted"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render("Final XP"),
		valueStyle.Render(fmt.Sprintf("%d", e.FinalXP))))
	if e.PenaltyXP > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render("Penalties"),
			errorStyle.Render(fmt.Sprintf("-%d", e.PenaltyXP))))
	}
	b.WriteString(fmt.Sprintf("  %s %d completed, %d failed\n",
		labelStyle.Render("Tasks"), e.TasksCompleted, e.TasksFailed))
	b.WriteString(fmt.Sprintf("  %s %dm\n",
		labelStyle.Render("Focus"), e.TotalFocusMinutes))
	return b.String()
}
