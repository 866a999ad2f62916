package tui

import "github.com/charmbracelet/lipgloss"

// Footer renders the status line and keyboard hints.
type Footer struct {
	message string
	isError bool
	width   int
}

// NewFooter creates a new Footer.
func NewFooter() *Footer {
	return &Footer{width: 80}
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetMessage sets the status message.
func (f *Footer) SetMessage(message string, isError bool) {
	f.message = message
	f.isError = isError
}

// View renders the footer for the given view mode.
func (f *Footer) View(mode viewMode) string {
	var status string
	if f.message != "" {
		if f.isError {
			status = errorStyle.Render("✗ " + f.message)
		} else {
			status = successStyle.Render("✓ " + f.message)
		}
	}

	hints := f.keyboardHints(mode)
	sep := dimStyle.Render(" │ ")

	line := hints
	if status != "" {
		line = status + sep + hints
	}

	return lipgloss.NewStyle().
		Width(f.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color("238")).
		Render(line)
}

// keyboardHints returns context-sensitive keyboard hints.
func (f *Footer) keyboardHints(mode viewMode) string {
	var hints string
	switch mode {
	case viewInput:
		hints = "enter add │ esc cancel"
	case viewJournal:
		hints = "j dashboard │ q quit"
	case viewExtraction:
		hints = "any key to continue"
	default:
		hints = "↑/↓ select │ a add │ s start │ c complete │ f fail │ d delete │ x extract │ j journal │ q quit"
	}
	return dimStyle.Render(hints)
}
