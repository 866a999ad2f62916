package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// Tier accent colors, from calm to hot.
var tierColors = map[models.Tier]lipgloss.Color{
	models.Tier1: lipgloss.Color("34"),
	models.Tier2: lipgloss.Color("214"),
	models.Tier3: lipgloss.Color("196"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	timerDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Blink(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// tierBadge renders the [T1]/[T2]/[T3] marker in the tier's color.
func tierBadge(tier models.Tier) string {
	style := lipgloss.NewStyle().Foreground(tierColors[tier]).Bold(true)
	return style.Render(fmt.Sprintf("[T%d]", tier))
}

// statusGlyph maps a task status to its list marker.
func statusGlyph(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusActive:
		return timerStyle.Render("▶")
	case models.TaskStatusCompleted:
		return successStyle.Render("✓")
	case models.TaskStatusFailed:
		return errorStyle.Render("✗")
	default:
		return dimStyle.Render("○")
	}
}
