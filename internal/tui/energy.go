package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// EnergyBar renders the run's focus energy as a gradient bar.
type EnergyBar struct {
	bar progress.Model
}

// NewEnergyBar creates a new EnergyBar.
func NewEnergyBar() *EnergyBar {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	bar.ShowPercentage = false

	return &EnergyBar{bar: bar}
}

// SetWidth sets the bar width.
func (e *EnergyBar) SetWidth(width int) {
	w := width - 20
	if w < 10 {
		w = 10
	}
	e.bar.Width = w
}

// View renders the energy bar for the given run.
func (e *EnergyBar) View(run *models.Run) string {
	if run == nil {
		return ""
	}

	percent := 0.0
	if run.MaxEnergy > 0 {
		percent = float64(run.FocusEnergy) / float64(run.MaxEnergy)
	}

	label := fmt.Sprintf("%s %s",
		labelStyle.Render("Energy"),
		valueStyle.Render(fmt.Sprintf("%d/%d", run.FocusEnergy, run.MaxEnergy)))
	return label + "  " + e.bar.ViewAs(percent)
}
