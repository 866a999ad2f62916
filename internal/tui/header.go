package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// Header renders the run summary line: date, daily XP, focus minutes, and
// cumulative streak when stats are known.
type Header struct {
	width int
}

// NewHeader creates a new Header.
func NewHeader() *Header {
	return &Header{width: 80}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header for the given run and stats, either of which may
// be nil.
func (h *Header) View(run *models.Run, stats *models.UserStats) string {
	title := titleStyle.Render("ROGUE-DAY")

	var summary string
	if run == nil {
		summary = dimStyle.Render("no active run: press n to start one")
	} else {
		summary = fmt.Sprintf("%s  %s %s  %s %s",
			labelStyle.Render(run.RunDate),
			labelStyle.Render("XP"),
			valueStyle.Render(fmt.Sprintf("%d", run.DailyXP)),
			labelStyle.Render("Focus"),
			valueStyle.Render(fmt.Sprintf("%dm", run.TotalFocusMinutes)),
		)
	}

	if stats != nil && stats.CurrentStreak > 0 {
		summary += fmt.Sprintf("  %s %s",
			labelStyle.Render("Streak"),
			valueStyle.Render(fmt.Sprintf("%d", stats.CurrentStreak)))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "   ", summary)
	return lipgloss.NewStyle().
		Width(h.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("238")).
		Render(line)
}
